package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	orderdomain "github.com/chowstack/chowstack/internal/order/domain"
	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantType   string
	}{
		{orderdomain.ErrValidationFailed, http.StatusBadRequest, "validation_failed"},
		{fmt.Errorf("%w: quantity must be at least 1", orderdomain.ErrValidationFailed), http.StatusBadRequest, "validation_failed"},
		{orderdomain.ErrItemsUnavailable, http.StatusUnprocessableEntity, "items_unavailable"},
		{orderdomain.ErrComboTypeUnavailable, http.StatusUnprocessableEntity, "combo_type_unavailable"},
		{orderdomain.ErrTotalsMismatch, http.StatusUnprocessableEntity, "totals_mismatch"},
		{tenantdomain.ErrTenantNotFound, http.StatusNotFound, "tenant_not_found"},
		{tenantdomain.ErrTenantUnavailable, http.StatusServiceUnavailable, "tenant_unavailable"},
		{orderdomain.ErrOrderNotFound, http.StatusNotFound, "not_found"},
		{orderdomain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{orderdomain.ErrNotCancelable, http.StatusConflict, "not_cancelable"},
		{orderdomain.ErrOrderNumberCollision, http.StatusConflict, "order_number_collision"},
		{tenantdomain.ErrShortNameTaken, http.StatusConflict, "conflict"},
		{ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			status, payload := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, payload.Type)
		})
	}
}

func TestMapErrorNeverLeaksInternals(t *testing.T) {
	status, payload := mapError(errors.New("pq: connection reset by peer"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, payload.Message, "pq:")
}
