package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/chowstack/chowstack/pkg/db"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type service struct {
	db          *gorm.DB
	repo        domain.Repository
	genID       *snowflake.Node
	invalidator domain.CacheInvalidator
}

func NewService(conn *gorm.DB, repo domain.Repository, genID *snowflake.Node, invalidator domain.CacheInvalidator) domain.Service {
	return &service{
		db:          conn,
		repo:        repo,
		genID:       genID,
		invalidator: invalidator,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateTenantRequest) (*domain.TenantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	shortName := strings.TrimSpace(req.ShortName)
	if shortName == "" {
		shortName = name
	}
	shortName = slug.Make(shortName)
	if shortName == "" {
		return nil, domain.ErrInvalidShortName
	}

	customDomain, err := normalizeDomain(req.CustomDomain)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:           s.genID.Generate(),
		Name:         name,
		ShortName:    shortName,
		CustomDomain: customDomain,
		Active:       true,
		SupportEmail: strings.TrimSpace(req.SupportEmail),
		Phone:        strings.TrimSpace(req.Phone),
		BrandColor:   strings.TrimSpace(req.BrandColor),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrShortNameTaken
		}
		return nil, err
	}

	s.invalidator.Invalidate()
	return toResponse(&tenant), nil
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateTenantRequest) (*domain.TenantResponse, error) {
	tenant, err := s.getTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		tenant.Name = name
	}
	if req.CustomDomain != nil {
		customDomain, err := normalizeDomain(*req.CustomDomain)
		if err != nil {
			return nil, err
		}
		tenant.CustomDomain = customDomain
	}
	if req.SupportEmail != nil {
		tenant.SupportEmail = strings.TrimSpace(*req.SupportEmail)
	}
	if req.Phone != nil {
		tenant.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.BrandColor != nil {
		tenant.BrandColor = strings.TrimSpace(*req.BrandColor)
	}
	if req.Active != nil {
		tenant.Active = *req.Active
	}
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *tenant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDomainTaken
		}
		return nil, err
	}

	s.invalidator.Invalidate()
	return toResponse(tenant), nil
}

// Deactivate soft-disables a tenant. Tenants are never hard-deleted once they
// have orders; this flips the flag and drops the resolver cache.
func (s *service) Deactivate(ctx context.Context, id string) error {
	tenant, err := s.getTenant(ctx, id)
	if err != nil {
		return err
	}

	tenant.Active = false
	tenant.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, *tenant); err != nil {
		return err
	}

	s.invalidator.Invalidate()
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.TenantResponse, error) {
	tenant, err := s.getTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(tenant), nil
}

func (s *service) getTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	raw := strings.TrimSpace(id)
	if raw == "" {
		return nil, domain.ErrInvalidTenant
	}
	tenantID, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, domain.ErrInvalidTenant
	}
	return s.repo.GetByID(ctx, tenantID)
}

func normalizeDomain(raw string) (*string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return nil, nil
	}
	if strings.ContainsAny(value, " /:") || !strings.Contains(value, ".") {
		return nil, domain.ErrInvalidDomain
	}
	return &value, nil
}

func toResponse(tenant *domain.Tenant) *domain.TenantResponse {
	return &domain.TenantResponse{
		ID:           tenant.ID.String(),
		Name:         tenant.Name,
		ShortName:    tenant.ShortName,
		CustomDomain: tenant.CustomDomain,
		Active:       tenant.Active,
		SupportEmail: tenant.SupportEmail,
		Phone:        tenant.Phone,
		BrandColor:   tenant.BrandColor,
	}
}
