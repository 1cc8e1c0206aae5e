package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_ReturnsResult(t *testing.T) {
	p := New(2)

	v, err := Do(context.Background(), p, func(context.Context) (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Eventually(t, func() bool { return p.InFlight() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDo_ReturnsError(t *testing.T) {
	wantErr := errors.New("upstream down")

	_, err := Do(context.Background(), New(1), func(context.Context) (int, error) {
		return 0, wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestDo_RecoversPanic(t *testing.T) {
	_, err := Do(context.Background(), New(1), func(context.Context) (int, error) {
		panic("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDo_BoundsConcurrency(t *testing.T) {
	const size = 3
	p := New(size)

	var running, peak atomic.Int64
	var wg sync.WaitGroup
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Do(context.Background(), p, func(context.Context) (struct{}, error) {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return struct{}{}, nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(size))
	assert.Positive(t, peak.Load())
}

func TestDo_SoftCancellation(t *testing.T) {
	p := New(1)
	release := make(chan struct{})
	finished := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, p, func(context.Context) (int, error) {
		<-release
		close(finished)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	// The call keeps its slot until it finishes on its own.
	assert.Equal(t, int64(1), p.InFlight())
	close(release)
	<-finished
	assert.Eventually(t, func() bool { return p.InFlight() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDo_CancelledBeforeAcquire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := Do(ctx, New(1), func(context.Context) (int, error) {
		called = true
		return 0, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestNew_Observer(t *testing.T) {
	var mu sync.Mutex
	var seen []int64
	p := New(0, WithObserver(func(n int64) {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
	}))
	assert.Equal(t, DefaultSize, p.Size())

	_, err := Do(context.Background(), p, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []int64{1, 0}, seen)
	mu.Unlock()
}
