package server

import (
	"context"
	"net/http"
	"time"

	"github.com/chowstack/chowstack/internal/catalog"
	catalogdomain "github.com/chowstack/chowstack/internal/catalog/domain"
	"github.com/chowstack/chowstack/internal/config"
	"github.com/chowstack/chowstack/internal/notification"
	"github.com/chowstack/chowstack/internal/order"
	orderdomain "github.com/chowstack/chowstack/internal/order/domain"
	"github.com/chowstack/chowstack/internal/ratelimit"
	"github.com/chowstack/chowstack/internal/tenant"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/chowstack/chowstack/internal/tenant/resolver"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	tenant.Module,
	catalog.Module,
	order.Module,
	notification.Module,
	ratelimit.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	log       *zap.Logger
	resolver  *resolver.Resolver
	tenantSvc tenantdomain.Service
	menuSvc   catalogdomain.Service
	orderSvc  orderdomain.Service
	limiter   *ratelimit.Limiter
}

func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func NewServer(
	engine *gin.Engine,
	cfg config.Config,
	log *zap.Logger,
	res *resolver.Resolver,
	tenantSvc tenantdomain.Service,
	menuSvc catalogdomain.Service,
	orderSvc orderdomain.Service,
	limiter *ratelimit.Limiter,
) *Server {
	return &Server{
		engine:    engine,
		cfg:       cfg,
		log:       log,
		resolver:  res,
		tenantSvc: tenantSvc,
		menuSvc:   menuSvc,
		orderSvc:  orderSvc,
		limiter:   limiter,
	}
}

func (s *Server) RegisterRoutes() {
	// Storefront and staff API: everything here requires tenant context.
	api := s.engine.Group("/api", s.TenantContext())
	{
		api.GET("/menu", s.GetMenu)
		api.POST("/orders", s.OrderRateLimit(), s.PlaceOrder)
		api.GET("/orders", s.ListOrders)
		api.GET("/orders/:id", s.GetOrder)
		api.PATCH("/orders/:id/status", s.TransitionOrder)
		api.POST("/orders/:id/cancel", s.CancelOrder)
	}

	// Platform administration: tenant directory writes.
	admin := s.engine.Group("/admin", s.AdminAuth())
	{
		admin.POST("/tenants", s.CreateTenant)
		admin.GET("/tenants/:id", s.GetTenant)
		admin.PATCH("/tenants/:id", s.UpdateTenant)
		admin.POST("/tenants/:id/deactivate", s.DeactivateTenant)
	}
}

func run(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
