package tenant

import (
	"github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/chowstack/chowstack/internal/tenant/repository"
	"github.com/chowstack/chowstack/internal/tenant/resolver"
	"github.com/chowstack/chowstack/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(resolver.New),
	fx.Provide(func(r *resolver.Resolver) domain.CacheInvalidator { return r }),
	fx.Provide(service.NewService),
)
