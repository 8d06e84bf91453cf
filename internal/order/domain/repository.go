package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateOrder persists the order row and every item row. Callers wrap it
	// in a transaction; a partially written order is never observable.
	CreateOrder(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, tenantID, id snowflake.ID) (*Order, error)
	List(ctx context.Context, tenantID snowflake.ID, status *Status, limit int) ([]Order, error)
	// UpdateStatusGuard flips status only when the stored value still equals
	// from; the affected-row count tells the caller whether it raced.
	UpdateStatusGuard(ctx context.Context, id snowflake.ID, from, to Status) (int64, error)
}
