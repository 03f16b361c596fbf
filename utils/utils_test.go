package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedSetNoDuplicates(t *testing.T) {
	s := NewOrderedSet[string]()

	assert.True(t, s.Add("b"), "first Add should return true")
	assert.False(t, s.Add("b"), "second Add of same value should return false")
	assert.True(t, s.Add("a"))

	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, []string{"b", "a"}, s.Values())
}

func TestThrottleFirstCallDoesNotBlock(t *testing.T) {
	th := NewThrottle(time.Hour)
	var slept []time.Duration
	th.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	require.NoError(t, th.Wait(context.Background()))
	assert.Empty(t, slept)

	require.NoError(t, th.Wait(context.Background()))
	require.Len(t, slept, 1)
	assert.Greater(t, slept[0], 59*time.Minute)
}

func TestThrottleEnforcesInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	th := NewThrottle(interval)

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		require.NoError(t, th.Wait(context.Background()))
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, interval, "gap between call %d and %d", i-1, i)
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := NewThrottle(time.Hour)
	require.NoError(t, th.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, th.Wait(ctx), context.Canceled)
}

func TestRetryEventuallySucceeds(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewDiscardLogger()}

	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUp(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewDiscardLogger()}
	sentinel := errors.New("down")

	calls := 0
	err := r.Do(context.Background(), "ping", func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, calls)
}
