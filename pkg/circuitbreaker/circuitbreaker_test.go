package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTransport = errors.New("connection refused")
	errRejected  = errors.New("upstream 400")
)

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("backend-test", Config{
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errRejected)
		},
	})
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errTransport })
		require.ErrorIs(t, err, errTransport)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断打开后不应再调用后端")
}

func TestCircuitBreaker_RejectionsDoNotTrip(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error { return errRejected })
		assert.ErrorIs(t, err, errRejected)
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(20 * time.Millisecond)

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errTransport })
	}
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(20 * time.Millisecond)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errTransport })
	}

	time.Sleep(40 * time.Millisecond)
	_ = cb.Execute(func() error { return errTransport })

	assert.Equal(t, StateOpen, cb.State())
}

func TestCounts_FailureRate(t *testing.T) {
	c := Counts{Requests: 4, TotalFailures: 1}
	assert.InDelta(t, 0.25, c.FailureRate(), 1e-9)

	empty := Counts{}
	assert.Zero(t, empty.FailureRate())
}
