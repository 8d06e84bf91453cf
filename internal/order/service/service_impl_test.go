package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/chowstack/chowstack/internal/catalog/domain"
	catalogrepo "github.com/chowstack/chowstack/internal/catalog/repository"
	"github.com/chowstack/chowstack/internal/config"
	notificationdomain "github.com/chowstack/chowstack/internal/notification/domain"
	"github.com/chowstack/chowstack/internal/notification/email"
	"github.com/chowstack/chowstack/internal/order/composer"
	"github.com/chowstack/chowstack/internal/order/domain"
	orderrepo "github.com/chowstack/chowstack/internal/order/repository"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	tenantrepo "github.com/chowstack/chowstack/internal/tenant/repository"
	"github.com/chowstack/chowstack/pkg/tenantctx"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type harness struct {
	svc    domain.Service
	conn   *gorm.DB
	node   *snowflake.Node
	tenant tenantdomain.Tenant
	ctx    context.Context

	itemID  snowflake.ID
	comboID snowflake.ID
	sideID  snowflake.ID
}

func newHarness(t *testing.T, name string, sink notificationdomain.Sink) *harness {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&tenantdomain.Tenant{},
		&catalogdomain.Category{},
		&catalogdomain.MenuItem{},
		&catalogdomain.ComboType{},
		&catalogdomain.ComboAvailability{},
		&domain.Order{},
		&domain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Now().UTC()
	tenant := tenantdomain.Tenant{
		ID:        node.Generate(),
		Name:      "Gold Chopsticks",
		ShortName: "goldchopsticks",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, conn.Create(&tenant).Error)

	category := catalogdomain.Category{ID: node.Generate(), TenantID: tenant.ID, Name: "Entrees", CreatedAt: now}
	require.NoError(t, conn.Create(&category).Error)

	item := catalogdomain.MenuItem{
		ID: node.Generate(), TenantID: tenant.ID, CategoryID: category.ID,
		Name: "General Tso's Chicken", PriceCents: 1299, Available: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, conn.Create(&item).Error)

	side := catalogdomain.MenuItem{
		ID: node.Generate(), TenantID: tenant.ID, CategoryID: category.ID,
		Name: "Fried Rice", PriceCents: 999, Available: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, conn.Create(&side).Error)

	tenantID := tenant.ID
	addl := int64(395)
	combo := catalogdomain.ComboType{
		ID: node.Generate(), TenantID: &tenantID, Name: "Family Dinner",
		BasePriceCents: 2495, BaseItemCount: 2, AdditionalItemUnitPriceCents: &addl,
		CreatedAt: now,
	}
	require.NoError(t, conn.Create(&combo).Error)
	for _, avail := range []catalogdomain.ComboAvailability{
		{ComboTypeID: combo.ID, MenuItemID: item.ID, Role: catalogdomain.RoleEntree},
		{ComboTypeID: combo.ID, MenuItemID: side.ID, Role: catalogdomain.RoleBaseChoice},
	} {
		require.NoError(t, conn.Create(&avail).Error)
	}

	if sink == nil {
		sink = email.NoOpSink{}
	}

	holder := config.NewPlatformHolderFromConfig(config.DefaultPlatformConfig())
	comp := composer.New(catalogrepo.NewRepository(conn), holder)
	svc := NewService(
		conn,
		orderrepo.NewRepository(conn),
		tenantrepo.NewRepository(conn),
		comp,
		sink,
		node,
		zaptest.NewLogger(t),
	)

	return &harness{
		svc:     svc,
		conn:    conn,
		node:    node,
		tenant:  tenant,
		ctx:     tenantctx.WithTenantID(context.Background(), tenant.ID),
		itemID:  item.ID,
		comboID: combo.ID,
		sideID:  side.ID,
	}
}

func (h *harness) placeRequest() domain.PlaceOrderRequest {
	base := h.sideID
	return domain.PlaceOrderRequest{
		Customer: domain.CustomerInfo{
			Email:     "jamie@example.com",
			FirstName: "Jamie",
			LastName:  "Park",
			Phone:     "555-0101",
		},
		OrderType:     domain.OrderTypePickup,
		PaymentMethod: domain.PaymentMethodCash,
		Lines: []domain.CartLine{
			{Kind: domain.LineKindRegular, MenuItemID: h.itemID, Quantity: 2},
			{
				Kind:                domain.LineKindCombo,
				ComboTypeID:         h.comboID,
				BaseChoiceID:        &base,
				SelectedEntreeIDs:   []snowflake.ID{h.itemID},
				AdditionalEntreeIDs: []snowflake.ID{h.itemID},
				Quantity:            1,
			},
		},
		// 2 x 1299 + (2495 + 395) = 5488
		DeclaredTaxCents:   439,
		DeclaredTotalCents: 5927,
	}
}

func TestPlaceOrderPersistsAndRoundTrips(t *testing.T) {
	h := newHarness(t, "svc_place", nil)

	placed, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, placed.Status)
	assert.Equal(t, int64(5488), placed.SubtotalCents)
	assert.Equal(t, int64(5927), placed.TotalCents)
	assert.NotEmpty(t, placed.OrderNumber)
	require.Len(t, placed.Items, 2)

	// Re-read through the repository: the persisted payloads must decode
	// back into the same display shapes.
	got, err := h.svc.GetByID(h.ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, got.OrderNumber)
	require.Len(t, got.Items, 2)

	var regular, combo *domain.OrderItemResponse
	for i := range got.Items {
		if got.Items[i].Display.IsCombo() {
			combo = &got.Items[i]
		} else {
			regular = &got.Items[i]
		}
	}
	require.NotNil(t, regular)
	require.NotNil(t, combo)

	assert.Equal(t, "General Tso's Chicken", regular.Display.Name)
	require.NotNil(t, regular.MenuItemID)
	assert.Equal(t, h.itemID.String(), *regular.MenuItemID)

	assert.Equal(t, "Family Dinner", combo.Display.Name)
	assert.Nil(t, combo.MenuItemID)
	assert.Equal(t, h.comboID.String(), combo.Display.ComboTypeID)
	assert.Equal(t, h.sideID.String(), combo.Display.BaseChoiceID)
	assert.Equal(t, []string{h.itemID.String()}, combo.Display.SelectedEntreeIDs)
	assert.Equal(t, int64(2890), combo.UnitPriceCents)
}

func TestPlaceRejectsBadCartWithoutPersisting(t *testing.T) {
	h := newHarness(t, "svc_reject", nil)

	req := h.placeRequest()
	req.Lines[0].MenuItemID = 424242 // unknown item

	_, err := h.svc.Place(h.ctx, req)
	assert.ErrorIs(t, err, domain.ErrItemsUnavailable)

	var count int64
	require.NoError(t, h.conn.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, h.conn.Model(&domain.OrderItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceRequiresTenant(t *testing.T) {
	h := newHarness(t, "svc_notenant", nil)

	_, err := h.svc.Place(context.Background(), h.placeRequest())
	assert.ErrorIs(t, err, domain.ErrTenantRequired)
}

type captureSink struct {
	received chan notificationdomain.Receipt
}

func (c *captureSink) Send(ctx context.Context, receipt notificationdomain.Receipt) error {
	c.received <- receipt
	return nil
}

func TestPlaceDispatchesReceipt(t *testing.T) {
	sink := &captureSink{received: make(chan notificationdomain.Receipt, 1)}
	h := newHarness(t, "svc_receipt", sink)

	placed, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	select {
	case receipt := <-sink.received:
		assert.Equal(t, placed.OrderNumber, receipt.OrderNumber)
		assert.Equal(t, "Gold Chopsticks", receipt.TenantName)
		assert.Equal(t, "jamie@example.com", receipt.CustomerEmail)
		assert.Equal(t, int64(5927), receipt.TotalCents)
		assert.Len(t, receipt.Lines, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was never dispatched")
	}
}

func TestTransitionWalksTheMachine(t *testing.T) {
	h := newHarness(t, "svc_transition", nil)

	placed, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	for _, next := range []domain.Status{
		domain.StatusConfirmed,
		domain.StatusPreparing,
		domain.StatusReady,
		domain.StatusCompleted,
	} {
		got, err := h.svc.Transition(h.ctx, placed.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, got.Status)
	}

	// Terminal: nothing moves a completed order.
	_, err = h.svc.Transition(h.ctx, placed.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionRejectsSkips(t *testing.T) {
	h := newHarness(t, "svc_skip", nil)

	placed, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	_, err = h.svc.Transition(h.ctx, placed.ID, domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.svc.Transition(h.ctx, placed.ID, domain.Status("DELIVERED"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// The failed attempts left the row untouched.
	got, err := h.svc.GetByID(h.ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestCancelOnlyWhilePending(t *testing.T) {
	h := newHarness(t, "svc_cancel", nil)

	placed, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	cancelled, err := h.svc.Cancel(h.ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// A second order pushed into PREPARING is past the cancellation window.
	second, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)
	_, err = h.svc.Transition(h.ctx, second.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	_, err = h.svc.Transition(h.ctx, second.ID, domain.StatusPreparing)
	require.NoError(t, err)

	_, err = h.svc.Cancel(h.ctx, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotCancelable)

	got, err := h.svc.GetByID(h.ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, got.Status)
}

func TestGetByIDScopesToTenant(t *testing.T) {
	h := newHarness(t, "svc_scope", nil)

	placed, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	otherCtx := tenantctx.WithTenantID(context.Background(), h.node.Generate())
	_, err = h.svc.GetByID(otherCtx, placed.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = h.svc.GetByID(h.ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestListFiltersByStatus(t *testing.T) {
	h := newHarness(t, "svc_list", nil)

	first, err := h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)
	_, err = h.svc.Place(h.ctx, h.placeRequest())
	require.NoError(t, err)

	_, err = h.svc.Transition(h.ctx, first.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	all, err := h.svc.List(h.ctx, domain.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := h.svc.List(h.ctx, domain.ListOrdersRequest{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.StatusPending, pending[0].Status)

	_, err = h.svc.List(h.ctx, domain.ListOrdersRequest{Status: "DELIVERED"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	number := GenerateOrderNumber(at)
	assert.Regexp(t, `^ORD-\d{16}$`, number)

	// The millisecond prefix makes numbers time-sortable.
	later := GenerateOrderNumber(at.Add(time.Second))
	assert.Less(t, number[:17], later[:17])
}
