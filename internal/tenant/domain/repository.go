package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tenant Tenant) error
	Update(ctx context.Context, tenant Tenant) error
	GetByID(ctx context.Context, id snowflake.ID) (*Tenant, error)
	// ListActive returns every active tenant for a full cache rebuild.
	ListActive(ctx context.Context) ([]Tenant, error)
	// FindActiveByKey matches key against short_name or custom_domain.
	// Returns ErrTenantNotFound when no active tenant matches.
	FindActiveByKey(ctx context.Context, key string) (*Tenant, error)
}
