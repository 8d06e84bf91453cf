package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMachine(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		assert.True(t, CanTransition(StatusPending, StatusConfirmed))
		assert.True(t, CanTransition(StatusConfirmed, StatusPreparing))
		assert.True(t, CanTransition(StatusPreparing, StatusReady))
		assert.True(t, CanTransition(StatusReady, StatusCompleted))
	})

	t.Run("cancellation windows", func(t *testing.T) {
		assert.True(t, CanTransition(StatusPending, StatusCancelled))
		assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
		assert.False(t, CanTransition(StatusPreparing, StatusCancelled))
		assert.False(t, CanTransition(StatusReady, StatusCancelled))
	})

	t.Run("no skipping", func(t *testing.T) {
		assert.False(t, CanTransition(StatusPending, StatusCompleted))
		assert.False(t, CanTransition(StatusPending, StatusPreparing))
		assert.False(t, CanTransition(StatusPending, StatusReady))
		assert.False(t, CanTransition(StatusConfirmed, StatusReady))
	})

	t.Run("terminal states", func(t *testing.T) {
		for _, next := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
			assert.False(t, CanTransition(StatusCancelled, next))
			assert.False(t, CanTransition(StatusCompleted, next))
		}
	})

	t.Run("no self transitions", func(t *testing.T) {
		assert.False(t, CanTransition(StatusPending, StatusPending))
	})
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus(Status("DELIVERED")))
	assert.False(t, ValidStatus(Status("")))
}
