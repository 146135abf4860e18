package filter

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*evaluatorOptions)

type evaluatorOptions struct {
	workerCount int
	batchSize   int
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(o *evaluatorOptions) {
		if workers > 0 {
			o.workerCount = workers
		}
	}
}

// WithBatchSize sets the number of records a worker handles at once.
// Smaller inputs are evaluated without goroutines.
func WithBatchSize(size int) EvaluatorOption {
	return func(o *evaluatorOptions) {
		if size > 0 {
			o.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates a filter over records in chunks
type ConcurrentEvaluator[T any] struct {
	evaluatorOptions
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator[T any](opts ...EvaluatorOption) *ConcurrentEvaluator[T] {
	o := evaluatorOptions{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &ConcurrentEvaluator[T]{evaluatorOptions: o}
}

// Evaluate returns the records matching f, in input order. The first
// evaluation error stops the run.
func (e *ConcurrentEvaluator[T]) Evaluate(ctx context.Context, f Filter, records []T) ([]T, error) {
	if len(records) == 0 {
		return []T{}, nil
	}
	if len(records) < e.batchSize {
		return evaluateChunk(ctx, f, records, 0)
	}

	chunkSize := max(len(records)/e.workerCount, e.batchSize)
	chunks := make([][]T, (len(records)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)
	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(records))
		g.Go(func() error {
			matches, err := evaluateChunk(ctx, f, records[start:end], start)
			chunks[i] = matches
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	all := make([]T, 0, total)
	for _, c := range chunks {
		all = append(all, c...)
	}
	return all, nil
}

func evaluateChunk[T any](ctx context.Context, f Filter, records []T, offset int) ([]T, error) {
	matches := make([]T, 0, len(records)/4)
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := f.Match(record)
		if err != nil {
			var evalErr *EvaluationError
			if errors.As(err, &evalErr) {
				evalErr.Index = offset + i
			}
			return nil, err
		}
		if ok {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

// Apply compiles expression and returns the matching records. An empty
// expression matches everything.
func Apply[T any](ctx context.Context, c Compiler, expression string, records []T) ([]T, error) {
	if expression == "" {
		return records, nil
	}
	f, err := c.Compile(expression)
	if err != nil {
		return nil, err
	}
	return NewConcurrentEvaluator[T]().Evaluate(ctx, f, records)
}
