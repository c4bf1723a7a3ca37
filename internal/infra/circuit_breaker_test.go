package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errSMTP = errors.New("smtp: connection refused")

func TestCircuitBreakerTripsAndRecovers(t *testing.T) {
	clock := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{Nombre: "smtp", FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return clock }

	fail := func() error { return errSMTP }
	ok := func() error { return nil }

	assert.ErrorIs(t, cb.Execute(fail), errSMTP)
	assert.Equal(t, CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(fail), errSMTP)
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	clock = clock.Add(time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return clock }

	_ = cb.Execute(func() error { return errSMTP })
	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())

	_ = cb.Execute(func() error { return errSMTP })
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2})
	_ = cb.Execute(func() error { return errSMTP })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errSMTP })
	assert.Equal(t, CBClosed, cb.State())
}
