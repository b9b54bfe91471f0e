package clock_test

import (
	"context"
	"testing"
	"time"

	"news-digest/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceAndNow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)

	assert.Equal(t, start, fake.Now())

	fake.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), fake.Now())
}

func TestFake_SleepAdvancesWithoutBlocking(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)

	done := make(chan error, 1)
	go func() {
		done <- fake.Sleep(context.Background(), 8*time.Hour)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("fake sleep blocked")
	}

	assert.Equal(t, start.Add(8*time.Hour), fake.Now())
}

func TestFake_SleepCanceledContext(t *testing.T) {
	fake := clock.NewFake(time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fake.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReal_SleepHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := clock.Real{}.Sleep(ctx, 10*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReal_SleepZeroDuration(t *testing.T) {
	require.NoError(t, clock.Real{}.Sleep(context.Background(), 0))
}
