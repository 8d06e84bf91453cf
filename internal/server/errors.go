package server

import (
	"errors"
	"net/http"

	catalogdomain "github.com/chowstack/chowstack/internal/catalog/domain"
	orderdomain "github.com/chowstack/chowstack/internal/order/domain"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal_error")
	ErrNotFound     = errors.New("not_found")
	ErrRateLimited  = errors.New("rate_limited")
)

// ErrorHandlingMiddleware renders the last gin error as a typed JSON envelope.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError is the single place the error taxonomy meets HTTP. Cart rejections
// are client-caused and non-retryable without a corrected cart; tenant
// resolution failures are a class of their own; infra errors must never be
// dressed up as validation failures.
func mapError(err error) (int, errorPayload) {
	switch {
	// Composition failures (4xx, fix the cart and resubmit).
	case errors.Is(err, orderdomain.ErrValidationFailed):
		return http.StatusBadRequest, errorPayload{Type: "validation_failed", Message: err.Error()}
	case errors.Is(err, orderdomain.ErrItemsUnavailable):
		return http.StatusUnprocessableEntity, errorPayload{Type: "items_unavailable", Message: "some items are unavailable"}
	case errors.Is(err, orderdomain.ErrComboTypeUnavailable):
		return http.StatusUnprocessableEntity, errorPayload{Type: "combo_type_unavailable", Message: "combo type not offered"}
	case errors.Is(err, orderdomain.ErrTotalsMismatch):
		return http.StatusUnprocessableEntity, errorPayload{Type: "totals_mismatch", Message: "declared totals do not add up"}

	// Tenant resolution: not-found is terminal, unavailable is retryable.
	case errors.Is(err, orderdomain.ErrTenantRequired),
		errors.Is(err, tenantdomain.ErrTenantNotFound):
		return http.StatusNotFound, errorPayload{Type: "tenant_not_found", Message: "no restaurant is served at this address"}
	case errors.Is(err, tenantdomain.ErrTenantUnavailable):
		return http.StatusServiceUnavailable, errorPayload{Type: "tenant_unavailable", Message: "could not determine tenant right now"}

	// Order store.
	case errors.Is(err, orderdomain.ErrOrderNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "order not found"}
	case errors.Is(err, orderdomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{Type: "invalid_transition", Message: "order status cannot move there from its current state"}
	case errors.Is(err, orderdomain.ErrNotCancelable):
		return http.StatusConflict, errorPayload{Type: "not_cancelable", Message: "order is already being prepared"}
	case errors.Is(err, orderdomain.ErrOrderNumberCollision):
		return http.StatusConflict, errorPayload{Type: "order_number_collision", Message: "please retry the request"}
	case errors.Is(err, orderdomain.ErrInvalidOrder):
		return http.StatusBadRequest, errorPayload{Type: "validation_failed", Message: "invalid order reference"}

	// Tenant admin.
	case errors.Is(err, tenantdomain.ErrInvalidName),
		errors.Is(err, tenantdomain.ErrInvalidShortName),
		errors.Is(err, tenantdomain.ErrInvalidDomain),
		errors.Is(err, tenantdomain.ErrInvalidTenant):
		return http.StatusBadRequest, errorPayload{Type: "validation_failed", Message: err.Error()}
	case errors.Is(err, tenantdomain.ErrShortNameTaken),
		errors.Is(err, tenantdomain.ErrDomainTaken):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}

	case errors.Is(err, catalogdomain.ErrComboTypeNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "combo type not found"}

	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "unauthorized"}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{Type: "rate_limited", Message: "too many requests"}
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "not found"}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}
