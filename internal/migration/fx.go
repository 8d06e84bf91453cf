// Package migration creates the schema on startup so the service is usable
// out of the box for local and self-hosted deployments.
package migration

import (
	catalogdomain "github.com/chowstack/chowstack/internal/catalog/domain"
	orderdomain "github.com/chowstack/chowstack/internal/order/domain"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		return conn.AutoMigrate(
			&tenantdomain.Tenant{},
			&catalogdomain.Category{},
			&catalogdomain.MenuItem{},
			&catalogdomain.ComboType{},
			&catalogdomain.ComboAvailability{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
		)
	}),
)
