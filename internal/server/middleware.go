package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/chowstack/chowstack/pkg/tenantctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contextTenantKey = "tenant"

// RequestLogger logs every request with a correlation id and safe fields.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("host", c.Request.Host),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.String("error", lastErr.Error()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// TenantContext resolves the Host header to a tenant and injects it into the
// request context. Routes under this middleware require tenant context: a
// host with none (loopback, reserved subdomain) is a 404 here, before any
// cart validation runs.
func (s *Server) TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := s.resolver.Resolve(c.Request.Context(), c.Request.Host)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if tenant == nil {
			AbortWithError(c, tenantdomain.ErrTenantNotFound)
			return
		}

		c.Set(contextTenantKey, tenant)
		c.Request = c.Request.WithContext(tenantctx.WithTenantID(c.Request.Context(), tenant.ID))
		c.Next()
	}
}

// AdminAuth guards platform-admin routes with a static bearer token. Real
// identity is an external collaborator; this is the deployment's last-ditch
// gate when no gateway sits in front.
func (s *Server) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AdminToken == "" {
			c.Next()
			return
		}
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// OrderRateLimit throttles order submissions per client IP.
func (s *Server) OrderRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := s.limiter.Allow(c.Request.Context(), "orders:"+c.ClientIP())
		if err != nil {
			s.log.Warn("rate limiter unavailable", zap.Error(err))
		}
		if !allowed {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

func tenantFromGin(c *gin.Context) *tenantdomain.Tenant {
	if value, ok := c.Get(contextTenantKey); ok {
		if tenant, ok := value.(*tenantdomain.Tenant); ok {
			return tenant
		}
	}
	return nil
}
