// Package domain defines the notification boundary: receipts are delivered
// best-effort after an order commits and never influence the order itself.
package domain

import (
	"context"
	"time"
)

type Sink interface {
	Send(ctx context.Context, receipt Receipt) error
}

// Receipt carries the persisted order plus the tenant display metadata a
// customer-facing message needs.
type Receipt struct {
	OrderNumber string
	OrderType   string
	Status      string
	CreatedAt   time.Time

	TenantName   string
	SupportEmail string
	TenantPhone  string
	BrandColor   string

	CustomerEmail string
	CustomerName  string

	Lines []ReceiptLine

	SubtotalCents    int64
	TaxCents         int64
	DeliveryFeeCents int64
	TotalCents       int64
}

type ReceiptLine struct {
	Name           string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
	// Details carries combo sub-selections for display.
	Details []string
}
