package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Place validates the cart against the tenant's live menu, prices it
	// authoritatively, and persists order plus items atomically. The tenant
	// comes from the request context.
	Place(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error)
	GetByID(ctx context.Context, id string) (*OrderResponse, error)
	List(ctx context.Context, req ListOrdersRequest) ([]OrderResponse, error)
	// Transition moves an order one legal step through the status machine.
	Transition(ctx context.Context, id string, next Status) (*OrderResponse, error)
	// Cancel is the customer-facing shortcut: permitted only while PENDING.
	// Orders further along are cancelled via Transition by staff, with
	// refunds handled out of band.
	Cancel(ctx context.Context, id string) (*OrderResponse, error)
}

type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type PlaceOrderRequest struct {
	Customer      CustomerInfo `json:"customer"`
	OrderType     string       `json:"order_type"`
	PaymentMethod string       `json:"payment_method"`
	Notes         string       `json:"notes"`
	Lines         []CartLine   `json:"lines"`

	// Caller-declared totals. Tax and delivery fee are computed by an
	// external collaborator; the composer re-verifies the arithmetic before
	// trusting any of it.
	DeclaredTaxCents         int64 `json:"tax_cents"`
	DeclaredDeliveryFeeCents int64 `json:"delivery_fee_cents"`
	DeclaredTotalCents       int64 `json:"total_cents"`
}

type ListOrdersRequest struct {
	Status string
	Limit  int
}

type OrderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"order_number"`
	Status           Status              `json:"status"`
	OrderType        string              `json:"order_type"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentStatus    string              `json:"payment_status"`
	Customer         CustomerInfo        `json:"customer"`
	SubtotalCents    int64               `json:"subtotal_cents"`
	TaxCents         int64               `json:"tax_cents"`
	DeliveryFeeCents int64               `json:"delivery_fee_cents"`
	TotalCents       int64               `json:"total_cents"`
	Notes            string              `json:"notes,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
}

type OrderItemResponse struct {
	ID             string          `json:"id"`
	MenuItemID     *string         `json:"menu_item_id,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	Display        *DisplayPayload `json:"display"`
}

// Client-caused composition failures: non-retryable without a corrected cart.
var (
	ErrValidationFailed     = errors.New("validation_failed")
	ErrItemsUnavailable     = errors.New("items_unavailable")
	ErrComboTypeUnavailable = errors.New("combo_type_unavailable")
	ErrTotalsMismatch       = errors.New("totals_mismatch")
)

var (
	ErrTenantRequired    = errors.New("tenant_required")
	ErrOrderNotFound     = errors.New("order_not_found")
	ErrInvalidOrder      = errors.New("invalid_order")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrNotCancelable     = errors.New("not_cancelable")
	// ErrOrderNumberCollision surfaces a generated-number uniqueness clash;
	// retryable, unlike the validation failures above.
	ErrOrderNumberCollision = errors.New("order_number_collision")
)
