package catalog

import (
	"github.com/chowstack/chowstack/internal/catalog/repository"
	"github.com/chowstack/chowstack/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
