package batch

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("nft-toolkit/core/batch")

// Task processes one item.
type Task[T, R any] func(ctx context.Context, item T) (R, error)

// Result is the outcome of the task for the item at Index.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// ChunkFunc receives the results of a chunk once all of its tasks settled.
type ChunkFunc[R any] func(chunk []Result[R])

// Run invokes task for every item, size items at a time, and returns one
// result per item in input order. A failing item does not stop the others.
// Once ctx is done no further chunk is started and the remaining items report
// ctx.Err(). A size of zero or less runs items one by one.
func Run[T, R any](ctx context.Context, task Task[T, R], items []T, size int) []Result[R] {
	return RunChunked(ctx, task, items, size, nil)
}

// RunChunked is Run with a callback invoked after every chunk, before the next
// one starts. onChunk may be nil.
func RunChunked[T, R any](ctx context.Context, task Task[T, R], items []T, size int, onChunk ChunkFunc[R]) []Result[R] {
	if size <= 0 {
		size = 1
	}
	results := make([]Result[R], len(items))
	for i := range results {
		results[i].Index = i
	}

	for start, chunk := 0, 0; start < len(items); start, chunk = start+size, chunk+1 {
		end := min(start+size, len(items))

		if err := ctx.Err(); err != nil {
			for i := start; i < len(items); i++ {
				results[i].Err = err
			}
			break
		}

		runChunk(ctx, task, items, results, start, end, chunk)
		if onChunk != nil {
			onChunk(results[start:end])
		}
	}
	return results
}

func runChunk[T, R any](ctx context.Context, task Task[T, R], items []T, results []Result[R], start, end, chunk int) {
	ctx, span := tracer.Start(ctx, "batch.chunk", trace.WithAttributes(
		attribute.Int("batch.chunk", chunk),
		attribute.Int("batch.start", start),
		attribute.Int("batch.items", end-start),
	))
	defer span.End()

	// Tasks never return an error to the group so one failure cannot cancel
	// its siblings; each outcome lands in its own result slot.
	var g errgroup.Group
	for i := start; i < end; i++ {
		g.Go(func() error {
			results[i].Value, results[i].Err = task(ctx, items[i])
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i := start; i < end; i++ {
		if results[i].Err != nil {
			failed++
		}
	}
	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d tasks failed", failed, end-start))
	}
}

// Errors joins the errors of all failed results, annotated with their index.
// It returns nil when every item succeeded.
func Errors[R any](results []Result[R]) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", r.Index, r.Err))
		}
	}
	return errors.Join(errs...)
}

// Values returns the value of every result in order, including the zero
// values of failed items.
func Values[R any](results []Result[R]) []R {
	values := make([]R, len(results))
	for i, r := range results {
		values[i] = r.Value
	}
	return values
}

// Failed counts the results that carry an error.
func Failed[R any](results []Result[R]) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
