// Package composer turns a raw cart into a validated, authoritatively priced
// order graph. Every referenced entity is cross-checked against the tenant's
// live catalog in batched queries; pricing never trusts client-declared
// amounts.
package composer

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/chowstack/chowstack/internal/catalog/domain"
	"github.com/chowstack/chowstack/internal/config"
	"github.com/chowstack/chowstack/internal/order/domain"
)

type Composer struct {
	catalog  catalogdomain.Repository
	platform *config.PlatformHolder
}

func New(catalog catalogdomain.Repository, platform *config.PlatformHolder) *Composer {
	return &Composer{catalog: catalog, platform: platform}
}

// Compose validates and prices the cart under the given tenant and returns
// the unsaved order graph. The caller assigns ids, the order number, and
// persists it. Validation here is all-or-nothing: one bad line rejects the
// whole cart.
func (c *Composer) Compose(ctx context.Context, tenantID snowflake.ID, req domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := validateHeader(req); err != nil {
		return nil, err
	}

	var regular, combos []domain.CartLine
	for _, line := range req.Lines {
		switch line.Kind {
		case domain.LineKindRegular:
			regular = append(regular, line)
		case domain.LineKindCombo:
			combos = append(combos, line)
		default:
			return nil, fmt.Errorf("%w: unknown cart line kind", domain.ErrValidationFailed)
		}
	}

	items := make([]domain.OrderItem, 0, len(req.Lines))
	var subtotal int64

	priceByItem, err := c.validateRegular(ctx, tenantID, regular)
	if err != nil {
		return nil, err
	}
	for _, line := range regular {
		item := priceByItem[line.MenuItemID]
		payload, err := domain.EncodeRegularPayload(item.Name)
		if err != nil {
			return nil, err
		}
		menuItemID := line.MenuItemID
		items = append(items, domain.OrderItem{
			MenuItemID:     &menuItemID,
			Quantity:       line.Quantity,
			UnitPriceCents: item.PriceCents,
			DisplayPayload: payload,
		})
		subtotal += item.PriceCents * int64(line.Quantity)
	}

	equivalence := catalogdomain.ParseEquivalence(c.platform.Current().ComboEquivalence)
	for _, line := range combos {
		unitPrice, comboName, err := c.validateCombo(ctx, tenantID, equivalence, line)
		if err != nil {
			return nil, err
		}
		payload, err := domain.EncodeComboPayload(line, comboName)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			MenuItemID:     nil,
			Quantity:       line.Quantity,
			UnitPriceCents: unitPrice,
			DisplayPayload: payload,
		})
		subtotal += unitPrice * int64(line.Quantity)
	}

	// Tax and delivery fee come from the caller (computed upstream), but the
	// arithmetic must close over our subtotal before any of it is trusted.
	declaredSum := subtotal + req.DeclaredTaxCents + req.DeclaredDeliveryFeeCents
	tolerance := c.platform.Current().TotalsToleranceCent
	if diff := declaredSum - req.DeclaredTotalCents; diff > tolerance || diff < -tolerance {
		return nil, fmt.Errorf("%w: declared total %d, computed %d",
			domain.ErrTotalsMismatch, req.DeclaredTotalCents, declaredSum)
	}

	return &domain.Order{
		TenantID:          tenantID,
		CustomerEmail:     req.Customer.Email,
		CustomerFirstName: req.Customer.FirstName,
		CustomerLastName:  req.Customer.LastName,
		CustomerPhone:     req.Customer.Phone,
		DeliveryAddress:   req.Customer.Address,
		OrderType:         req.OrderType,
		PaymentMethod:     req.PaymentMethod,
		PaymentStatus:     domain.PaymentStatusPending,
		SubtotalCents:     subtotal,
		TaxCents:          req.DeclaredTaxCents,
		DeliveryFeeCents:  req.DeclaredDeliveryFeeCents,
		TotalCents:        subtotal + req.DeclaredTaxCents + req.DeclaredDeliveryFeeCents,
		Status:            domain.StatusPending,
		Notes:             req.Notes,
		Items:             items,
	}, nil
}

// validateRegular batches one availability query over every distinct regular
// item id. A count mismatch means unknown, unavailable, or cross-tenant ids;
// the error deliberately names no specific item.
func (c *Composer) validateRegular(ctx context.Context, tenantID snowflake.ID, lines []domain.CartLine) (map[snowflake.ID]catalogdomain.MenuItem, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	distinct := make([]snowflake.ID, 0, len(lines))
	seen := make(map[snowflake.ID]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.MenuItemID]; dup {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		distinct = append(distinct, line.MenuItemID)
	}

	found, err := c.catalog.FindAvailableItems(ctx, tenantID, distinct)
	if err != nil {
		return nil, err
	}
	if len(found) != len(distinct) {
		return nil, fmt.Errorf("%w: some items are unavailable", domain.ErrItemsUnavailable)
	}

	byID := make(map[snowflake.ID]catalogdomain.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}
	return byID, nil
}

// validateCombo checks one combo line and returns its unit price. The
// availability set is looked up under the equivalence-canonical combo id.
// BaseItemCount is advisory bookkeeping on the combo type and is not
// re-validated against the pick counts; only referenced-id availability is.
func (c *Composer) validateCombo(ctx context.Context, tenantID snowflake.ID, equivalence catalogdomain.Equivalence, line domain.CartLine) (int64, string, error) {
	combo, err := c.catalog.GetComboType(ctx, tenantID, line.ComboTypeID)
	if err == catalogdomain.ErrComboTypeNotFound {
		return 0, "", fmt.Errorf("%w: combo type not offered", domain.ErrComboTypeUnavailable)
	}
	if err != nil {
		return 0, "", err
	}

	selection := line.SelectionIDs()
	if len(selection) > 0 {
		count, err := c.catalog.CountAvailableComboItems(ctx, equivalence.Canonical(combo.ID), selection)
		if err != nil {
			return 0, "", err
		}
		if count != int64(len(selection)) {
			return 0, "", fmt.Errorf("%w: some combo selections are unavailable", domain.ErrItemsUnavailable)
		}
	}

	unitPrice := combo.BasePriceCents
	if combo.AdditionalItemUnitPriceCents != nil {
		unitPrice += int64(len(line.AdditionalEntreeIDs)) * *combo.AdditionalItemUnitPriceCents
	}
	return unitPrice, combo.Name, nil
}

func validateHeader(req domain.PlaceOrderRequest) error {
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: cart is empty", domain.ErrValidationFailed)
	}
	if req.Customer.Email == "" {
		return fmt.Errorf("%w: customer email is required", domain.ErrValidationFailed)
	}
	if req.Customer.FirstName == "" || req.Customer.LastName == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrValidationFailed)
	}
	if req.Customer.Phone == "" {
		return fmt.Errorf("%w: customer phone is required", domain.ErrValidationFailed)
	}

	switch req.OrderType {
	case domain.OrderTypePickup:
	case domain.OrderTypeDelivery:
		if req.Customer.Address == "" {
			return fmt.Errorf("%w: delivery orders require an address", domain.ErrValidationFailed)
		}
	default:
		return fmt.Errorf("%w: invalid order type", domain.ErrValidationFailed)
	}

	switch req.PaymentMethod {
	case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodOnline:
	default:
		return fmt.Errorf("%w: invalid payment method", domain.ErrValidationFailed)
	}
	return nil
}
