package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// FindAvailableItems returns the available menu items among ids, scoped
	// to the tenant. Callers compare the result size against the distinct id
	// count; anything missing means cross-tenant, unknown, or unavailable.
	FindAvailableItems(ctx context.Context, tenantID snowflake.ID, ids []snowflake.ID) ([]MenuItem, error)
	// GetComboType fetches a combo type owned by the tenant or declared
	// globally (tenant_id IS NULL).
	GetComboType(ctx context.Context, tenantID, id snowflake.ID) (*ComboType, error)
	// CountAvailableComboItems counts how many of ids appear in the
	// availability set of the given (canonical) combo type and are backed by
	// an available menu item.
	CountAvailableComboItems(ctx context.Context, comboTypeID snowflake.ID, ids []snowflake.ID) (int64, error)
	ListCategories(ctx context.Context, tenantID snowflake.ID) ([]Category, error)
	ListAvailableItems(ctx context.Context, tenantID snowflake.ID) ([]MenuItem, error)
	ListComboTypes(ctx context.Context, tenantID snowflake.ID) ([]ComboType, error)
	ListComboAvailability(ctx context.Context, comboTypeID snowflake.ID) ([]ComboAvailability, error)
}

var ErrComboTypeNotFound = errors.New("combo_type_not_found")
