package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error)
	Update(ctx context.Context, id string, req UpdateTenantRequest) (*TenantResponse, error)
	Deactivate(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*TenantResponse, error)
}

// CacheInvalidator is implemented by the resolver cache. Every administrative
// write drops the whole cache; patching individual entries could serve a
// stale slug/domain mix after a reassignment.
type CacheInvalidator interface {
	Invalidate()
}

type CreateTenantRequest struct {
	Name         string
	ShortName    string
	CustomDomain string
	SupportEmail string
	Phone        string
	BrandColor   string
}

type UpdateTenantRequest struct {
	Name         *string
	CustomDomain *string
	SupportEmail *string
	Phone        *string
	BrandColor   *string
	Active       *bool
}

type TenantResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ShortName    string  `json:"short_name"`
	CustomDomain *string `json:"custom_domain,omitempty"`
	Active       bool    `json:"active"`
	SupportEmail string  `json:"support_email"`
	Phone        string  `json:"phone"`
	BrandColor   string  `json:"brand_color"`
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidShortName = errors.New("invalid_short_name")
	ErrInvalidDomain    = errors.New("invalid_domain")
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrShortNameTaken   = errors.New("short_name_taken")
	ErrDomainTaken      = errors.New("domain_taken")

	// ErrTenantNotFound means no tenant matches the host: a terminal answer.
	ErrTenantNotFound = errors.New("tenant_not_found")
	// ErrTenantUnavailable means the directory could not be consulted right
	// now; distinct from not-found so callers can retry.
	ErrTenantUnavailable = errors.New("tenant_unavailable")
)
