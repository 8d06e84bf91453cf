// Package domain contains persistence models and contracts for the order
// composition and fulfillment service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Order types.
const (
	OrderTypePickup   = "PICKUP"
	OrderTypeDelivery = "DELIVERY"
)

// Payment methods accepted at composition time.
const (
	PaymentMethodCash   = "CASH"
	PaymentMethodCard   = "CARD"
	PaymentMethodOnline = "ONLINE"
)

// Payment lifecycle, owned by the payment collaborator; the composer only
// stamps the initial value.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

// Order is the append-only record of an accepted cart. Rows are never
// deleted; cancellation is a status. Items are immutable once created.
type Order struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	OrderNumber string       `gorm:"type:text;not null;uniqueIndex:ux_orders_number" json:"order_number"`

	CustomerEmail     string `gorm:"type:text;not null" json:"customer_email"`
	CustomerFirstName string `gorm:"type:text;not null" json:"customer_first_name"`
	CustomerLastName  string `gorm:"type:text;not null" json:"customer_last_name"`
	CustomerPhone     string `gorm:"type:text;not null" json:"customer_phone"`
	DeliveryAddress   string `gorm:"type:text" json:"delivery_address,omitempty"`

	OrderType     string `gorm:"type:text;not null" json:"order_type"`
	PaymentMethod string `gorm:"type:text;not null" json:"payment_method"`
	PaymentStatus string `gorm:"type:text;not null" json:"payment_status"`

	SubtotalCents    int64 `gorm:"not null" json:"subtotal_cents"`
	TaxCents         int64 `gorm:"not null" json:"tax_cents"`
	DeliveryFeeCents int64 `gorm:"not null" json:"delivery_fee_cents"`
	TotalCents       int64 `gorm:"not null" json:"total_cents"`

	Status Status `gorm:"type:text;not null" json:"status"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// OrderItem is one persisted line. MenuItemID is nil for combo lines; the
// display payload carries everything needed to reconstruct the selection.
type OrderItem struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	OrderID        snowflake.ID   `gorm:"not null;index" json:"order_id"`
	MenuItemID     *snowflake.ID  `gorm:"index" json:"menu_item_id,omitempty"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	UnitPriceCents int64          `gorm:"not null" json:"unit_price_cents"`
	DisplayPayload datatypes.JSON `gorm:"not null" json:"display_payload"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }
