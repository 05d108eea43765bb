package batch

import (
	"context"
	"errors"
	"fmt"
)

// Batch size bounds.
const (
	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")

	// ErrStop may be returned by a BatchCallback to end processing early
	// without an error. The batch that returned it counts as processed.
	ErrStop = errors.New("stop batch processing")
)

// BatchCallback is a function that processes a single batch of items.
// It receives the batch items and batch index (0-based).
//
//nolint:revive // BatchCallback is the canonical name for this exported type.
type BatchCallback[T any] func(ctx context.Context, batch []T, batchIndex int) error

// ProgressCallback is invoked after each batch is processed.
type ProgressCallback func(snapshot ProgressSnapshot)

// Processor walks items in fixed-size batches, one batch at a time.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a new batch processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// Process processes items in order, one batch per callback invocation.
// It stops at the first error, at ErrStop (returning nil), or when ctx is done.
// The returned Summary reports how far processing got in every case.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback BatchCallback[T]) (Summary, error) {
	if len(items) == 0 {
		return Summary{}, ErrEmptyItems
	}
	if callback == nil {
		return Summary{}, ErrNilCallback
	}

	bounds := p.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(bounds), p.batchSize)

	for batchIndex, b := range bounds {
		select {
		case <-ctx.Done():
			return progress.Summary(false), ctx.Err()
		default:
		}

		err := callback(ctx, items[b[0]:b[1]], batchIndex)
		if err != nil && !errors.Is(err, ErrStop) {
			return progress.Summary(false), fmt.Errorf("batch %d failed: %w", batchIndex, err)
		}

		progress.AddProcessed(b[1] - b[0])
		if p.onProgress != nil {
			p.onProgress(progress.Snapshot())
		}

		if err != nil {
			return progress.Summary(true), nil
		}
	}

	return progress.Summary(false), nil
}

// CalculateBatches returns the batch boundaries for the given item count
// as [start, end) index pairs.
func (p *Processor[T]) CalculateBatches(totalItems int) [][2]int {
	totalBatches := totalItems / p.batchSize
	if totalItems%p.batchSize > 0 {
		totalBatches++
	}

	batches := make([][2]int, totalBatches)
	for i := range totalBatches {
		start := i * p.batchSize
		end := min(start+p.batchSize, totalItems)
		batches[i] = [2]int{start, end}
	}
	return batches
}
