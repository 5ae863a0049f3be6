package circuit

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func fail() error    { return errUpstream }
func succeed() error { return nil }

func TestBreaker_InitialState(t *testing.T) {
	b := New("test")
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "test", b.Name())
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := New("test", WithFailureThreshold(3))

	require.ErrorIs(t, b.Execute(fail), errUpstream)
	require.ErrorIs(t, b.Execute(fail), errUpstream)
	assert.Equal(t, StateClosed, b.State())

	require.ErrorIs(t, b.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New("test", WithFailureThreshold(3))

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	require.NoError(t, b.Execute(succeed))

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	assert.Equal(t, StateClosed, b.State())

	_ = b.Execute(fail)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_OpenCircuitFailsFastWithoutCalling(t *testing.T) {
	b := New("test", WithFailureThreshold(1), WithCooldown(time.Minute))
	_ = b.Execute(fail)

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestBreaker_HalfOpenTrialSuccessCloses(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("test", WithFailureThreshold(1), WithCooldown(10*time.Second), WithClock(clock.Now))
	_ = b.Execute(fail)

	clock.Advance(9 * time.Second)
	require.ErrorIs(t, b.Execute(succeed), ErrOpen)

	clock.Advance(time.Second)
	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenTrialFailureReopens(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("test", WithFailureThreshold(1), WithCooldown(10*time.Second), WithClock(clock.Now))
	_ = b.Execute(fail)

	clock.Advance(10 * time.Second)
	require.ErrorIs(t, b.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, b.State())

	// cooldown restarts from the failed trial
	clock.Advance(5 * time.Second)
	require.ErrorIs(t, b.Execute(succeed), ErrOpen)
}

func TestBreaker_HalfOpenAdmitsSingleTrial(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("test", WithFailureThreshold(1), WithCooldown(time.Second), WithClock(clock.Now))
	_ = b.Execute(fail)
	clock.Advance(time.Second)

	var nested error
	err := b.Execute(func() error {
		assert.Equal(t, StateHalfOpen, b.State())
		nested = b.Execute(succeed)
		return nil
	})

	require.NoError(t, err)
	require.ErrorIs(t, nested, ErrOpen)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	errContract := errors.New("bad request")
	b := New("test",
		WithFailureThreshold(1),
		WithFailurePredicate(func(err error) bool { return !errors.Is(err, errContract) }),
	)

	require.ErrorIs(t, b.Execute(func() error { return errContract }), errContract)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_IgnoredErrorDuringTrialKeepsHalfOpen(t *testing.T) {
	errContract := errors.New("bad request")
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("test",
		WithFailureThreshold(1),
		WithCooldown(time.Second),
		WithClock(clock.Now),
		WithFailurePredicate(func(err error) bool { return !errors.Is(err, errContract) }),
	)
	_ = b.Execute(fail)
	clock.Advance(time.Second)

	require.ErrorIs(t, b.Execute(func() error { return errContract }), errContract)
	assert.Equal(t, StateHalfOpen, b.State())

	// the trial slot is free again
	require.ErrorIs(t, b.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_IgnoredErrorsKeepFailureCount(t *testing.T) {
	errContract := errors.New("bad request")
	b := New("test",
		WithFailureThreshold(2),
		WithFailurePredicate(func(err error) bool { return !errors.Is(err, errContract) }),
	)

	_ = b.Execute(fail)
	_ = b.Execute(func() error { return errContract })
	_ = b.Execute(fail)

	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_Reset(t *testing.T) {
	b := New("test", WithFailureThreshold(1))
	_ = b.Execute(fail)
	require.Equal(t, StateOpen, b.State())

	b.Reset()

	assert.Equal(t, StateClosed, b.State())
	require.NoError(t, b.Execute(succeed))
}

func TestBreaker_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	b := New("courier-api", WithFailureThreshold(1), WithCooldown(time.Minute), WithMetrics(m))

	assert.InDelta(t, 0, testutil.ToFloat64(m.State.WithLabelValues("courier-api")), 0)

	_ = b.Execute(fail)
	assert.InDelta(t, 1, testutil.ToFloat64(m.State.WithLabelValues("courier-api")), 0)

	_ = b.Execute(succeed)
	_ = b.Execute(succeed)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Rejected.WithLabelValues("courier-api")), 0)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
