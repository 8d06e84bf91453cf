package service

import (
	"fmt"

	notificationdomain "github.com/chowstack/chowstack/internal/notification/domain"
	"github.com/chowstack/chowstack/internal/order/domain"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
)

// buildReceipt reconstructs display lines from the persisted payloads, the
// same decode path receipts and kitchen displays rely on.
func buildReceipt(tenant *tenantdomain.Tenant, order *domain.Order) (notificationdomain.Receipt, error) {
	lines := make([]notificationdomain.ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		payload, err := domain.DecodePayload(item.DisplayPayload)
		if err != nil {
			return notificationdomain.Receipt{}, err
		}

		line := notificationdomain.ReceiptLine{
			Name:           payload.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.UnitPriceCents * int64(item.Quantity),
		}
		if payload.IsCombo() {
			if payload.BaseChoiceID != "" {
				line.Details = append(line.Details, "1 base choice")
			}
			if n := len(payload.SelectedEntreeIDs); n > 0 {
				line.Details = append(line.Details, fmt.Sprintf("%d entree(s)", n))
			}
			if n := len(payload.AdditionalEntreeIDs); n > 0 {
				line.Details = append(line.Details, fmt.Sprintf("%d extra item(s)", n))
			}
		}
		lines = append(lines, line)
	}

	return notificationdomain.Receipt{
		OrderNumber:      order.OrderNumber,
		OrderType:        order.OrderType,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		TenantName:       tenant.Name,
		SupportEmail:     tenant.SupportEmail,
		TenantPhone:      tenant.Phone,
		BrandColor:       tenant.BrandColor,
		CustomerEmail:    order.CustomerEmail,
		CustomerName:     order.CustomerFirstName + " " + order.CustomerLastName,
		Lines:            lines,
		SubtotalCents:    order.SubtotalCents,
		TaxCents:         order.TaxCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TotalCents:       order.TotalCents,
	}, nil
}
