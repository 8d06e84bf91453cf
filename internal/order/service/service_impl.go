package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	notificationdomain "github.com/chowstack/chowstack/internal/notification/domain"
	"github.com/chowstack/chowstack/internal/order/composer"
	"github.com/chowstack/chowstack/internal/order/domain"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/chowstack/chowstack/pkg/db"
	"github.com/chowstack/chowstack/pkg/tenantctx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chowstack_orders_created_total",
	Help: "Orders successfully persisted, by tenant short name.",
}, []string{"tenant"})

// createAttempts bounds retries after an order-number uniqueness clash.
const createAttempts = 3

type service struct {
	db       *gorm.DB
	repo     domain.Repository
	tenants  tenantdomain.Repository
	composer *composer.Composer
	sink     notificationdomain.Sink
	genID    *snowflake.Node
	log      *zap.Logger
}

func NewService(
	conn *gorm.DB,
	repo domain.Repository,
	tenants tenantdomain.Repository,
	comp *composer.Composer,
	sink notificationdomain.Sink,
	genID *snowflake.Node,
	log *zap.Logger,
) domain.Service {
	return &service{
		db:       conn,
		repo:     repo,
		tenants:  tenants,
		composer: comp,
		sink:     sink,
		genID:    genID,
		log:      log,
	}
}

func (s *service) Place(ctx context.Context, req domain.PlaceOrderRequest) (*domain.OrderResponse, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrTenantRequired
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	order, err := s.composer.Compose(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	// Validation against the catalog happened above without locks; an item
	// going unavailable between here and commit is an accepted race, not a
	// defended-against failure.
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		order.ID = s.genID.Generate()
		order.OrderNumber = GenerateOrderNumber(time.Now().UTC())
		order.CreatedAt = time.Now().UTC()
		order.UpdatedAt = order.CreatedAt
		for i := range order.Items {
			order.Items[i].ID = s.genID.Generate()
			order.Items[i].OrderID = order.ID
		}

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).CreateOrder(ctx, order)
		})
		if err == nil {
			lastErr = nil
			break
		}
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		lastErr = domain.ErrOrderNumberCollision
	}
	if lastErr != nil {
		return nil, lastErr
	}

	ordersCreated.WithLabelValues(tenant.ShortName).Inc()
	s.dispatchReceipt(tenant, order)

	return toResponse(order)
}

// dispatchReceipt hands the persisted order to the notification sink without
// tying its outcome to the create call: failures are logged and swallowed.
func (s *service) dispatchReceipt(tenant *tenantdomain.Tenant, order *domain.Order) {
	receipt, err := buildReceipt(tenant, order)
	if err != nil {
		s.log.Error("receipt build failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.sink.Send(ctx, receipt); err != nil {
			s.log.Warn("receipt delivery failed",
				zap.String("order_number", order.OrderNumber),
				zap.String("tenant", tenant.ShortName),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.OrderResponse, error) {
	order, err := s.getScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(order)
}

func (s *service) List(ctx context.Context, req domain.ListOrdersRequest) ([]domain.OrderResponse, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrTenantRequired
	}

	var status *domain.Status
	if raw := strings.TrimSpace(req.Status); raw != "" {
		parsed := domain.Status(strings.ToUpper(raw))
		if !domain.ValidStatus(parsed) {
			return nil, domain.ErrInvalidOrder
		}
		status = &parsed
	}

	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	orders, err := s.repo.List(ctx, tenantID, status, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.OrderResponse, 0, len(orders))
	for i := range orders {
		resp, err := toResponse(&orders[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *service) Transition(ctx context.Context, id string, next domain.Status) (*domain.OrderResponse, error) {
	if !domain.ValidStatus(next) {
		return nil, domain.ErrInvalidTransition
	}

	order, err := s.getScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, next) {
		return nil, domain.ErrInvalidTransition
	}

	affected, err := s.repo.UpdateStatusGuard(ctx, order.ID, order.Status, next)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Someone moved the order between our read and the guard write.
		return nil, domain.ErrInvalidTransition
	}

	order.Status = next
	return toResponse(order)
}

func (s *service) Cancel(ctx context.Context, id string) (*domain.OrderResponse, error) {
	order, err := s.getScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPending {
		return nil, domain.ErrNotCancelable
	}

	affected, err := s.repo.UpdateStatusGuard(ctx, order.ID, domain.StatusPending, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotCancelable
	}

	order.Status = domain.StatusCancelled
	return toResponse(order)
}

func (s *service) getScoped(ctx context.Context, id string) (*domain.Order, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return nil, domain.ErrTenantRequired
	}

	raw := strings.TrimSpace(id)
	if raw == "" {
		return nil, domain.ErrInvalidOrder
	}
	orderID, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, domain.ErrInvalidOrder
	}

	return s.repo.GetByID(ctx, tenantID, orderID)
}

func toResponse(order *domain.Order) (*domain.OrderResponse, error) {
	items := make([]domain.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		payload, err := domain.DecodePayload(item.DisplayPayload)
		if err != nil {
			return nil, err
		}
		var menuItemID *string
		if item.MenuItemID != nil {
			s := item.MenuItemID.String()
			menuItemID = &s
		}
		items = append(items, domain.OrderItemResponse{
			ID:             item.ID.String(),
			MenuItemID:     menuItemID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			Display:        payload,
		})
	}

	return &domain.OrderResponse{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		OrderType:     order.OrderType,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		Customer: domain.CustomerInfo{
			Email:     order.CustomerEmail,
			FirstName: order.CustomerFirstName,
			LastName:  order.CustomerLastName,
			Phone:     order.CustomerPhone,
			Address:   order.DeliveryAddress,
		},
		SubtotalCents:    order.SubtotalCents,
		TaxCents:         order.TaxCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TotalCents:       order.TotalCents,
		Notes:            order.Notes,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}, nil
}
