package batch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_OrderAndChunks(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
		started  []string
	)
	// Later items in a chunk finish first, so order must not depend on timing.
	delays := map[string]time.Duration{"a": 30 * time.Millisecond, "b": 5 * time.Millisecond, "c": 20 * time.Millisecond, "d": time.Millisecond, "e": time.Millisecond}

	task := func(ctx context.Context, item string) (string, error) {
		mu.Lock()
		inFlight++
		peak = max(peak, inFlight)
		started = append(started, item)
		mu.Unlock()

		time.Sleep(delays[item])

		mu.Lock()
		inFlight--
		mu.Unlock()
		return strings.ToUpper(item), nil
	}

	results := Run(context.Background(), task, []string{"a", "b", "c", "d", "e"}, 2)

	require.NoError(t, Errors(results))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, Values(results))
	assert.Equal(t, 2, peak)

	// chunk barrier: a and b start before c and d, which start before e
	require.Len(t, started, 5)
	assert.ElementsMatch(t, []string{"a", "b"}, started[0:2])
	assert.ElementsMatch(t, []string{"c", "d"}, started[2:4])
	assert.Equal(t, "e", started[4])
}

func TestRun_ContinueOnError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32

	task := func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 2 {
			return 0, boom
		}
		return n * 10, nil
	}

	results := Run(context.Background(), task, []int{1, 2, 3, 4}, 2)

	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, 1, Failed(results))
	assert.Equal(t, []int{10, 0, 30, 40}, Values(results))
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 1, results[1].Index)

	err := Errors(results)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "item 1")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	task := func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		cancel()
		return n, nil
	}

	results := Run(ctx, task, []int{1, 2, 3, 4, 5}, 2)

	assert.Equal(t, int32(2), calls.Load(), "only the first chunk runs")
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	for _, r := range results[2:] {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_EdgeSizes(t *testing.T) {
	identity := func(ctx context.Context, n int) (int, error) { return n, nil }

	t.Run("Empty", func(t *testing.T) {
		results := Run(context.Background(), identity, nil, 3)
		assert.Empty(t, results)
		assert.NoError(t, Errors(results))
	})

	t.Run("ZeroSize", func(t *testing.T) {
		results := Run(context.Background(), identity, []int{1, 2, 3}, 0)
		assert.Equal(t, []int{1, 2, 3}, Values(results))
	})

	t.Run("SizeLargerThanItems", func(t *testing.T) {
		results := Run(context.Background(), identity, []int{1, 2}, 10)
		assert.Equal(t, []int{1, 2}, Values(results))
	})
}

func TestInstrument(t *testing.T) {
	name := "instrument_test"
	task := Instrument(name, func(ctx context.Context, n int) (int, error) {
		if n < 0 {
			return 0, errors.New("negative")
		}
		return n, nil
	})

	Run(context.Background(), task, []int{1, -1, 2}, 3)

	assert.Equal(t, float64(2), testutil.ToFloat64(TasksCompleted.WithLabelValues(name)))
	assert.Equal(t, float64(1), testutil.ToFloat64(TasksFailed.WithLabelValues(name)))
	assert.Equal(t, float64(0), testutil.ToFloat64(TasksActive.WithLabelValues(name)))
}

func TestRunChunked(t *testing.T) {
	var chunks [][]int
	double := func(ctx context.Context, n int) (int, error) { return n * 2, nil }

	results := RunChunked(context.Background(), double, []int{1, 2, 3, 4, 5}, 2, func(chunk []Result[int]) {
		indices := make([]int, 0, len(chunk))
		for _, r := range chunk {
			indices = append(indices, r.Index)
		}
		chunks = append(chunks, indices)
	})

	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4}}, chunks)
	assert.Equal(t, []int{2, 4, 6, 8, 10}, Values(results))
}
