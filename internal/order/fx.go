package order

import (
	"github.com/chowstack/chowstack/internal/order/composer"
	"github.com/chowstack/chowstack/internal/order/repository"
	"github.com/chowstack/chowstack/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(composer.New),
	fx.Provide(service.NewService),
)
