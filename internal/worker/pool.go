// Package worker provides a worker pool for evaluating positions in parallel.
package worker

import (
	"context"
	"sort"
	"sync"

	"github.com/lgbarn/gamehub-go/internal/chess"
)

// WorkItem is one position to evaluate.
type WorkItem struct {
	FEN    string
	Source string // Where the FEN came from, e.g. "positions.txt:12"
	Index  int    // Input order, used to restore ordering
}

// ProcessResult is the outcome of evaluating one WorkItem.
type ProcessResult struct {
	Index  int
	FEN    string
	Source string
	Board  *chess.Board // Parsed position (nil on error)
	Info   interface{}  // Opaque analysis payload; typed by consumer
	Error  error
}

// ProcessFunc evaluates a single item. It must be safe for concurrent use.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc over submitted items on a fixed number of
// goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	closeOnce   sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool bound to ctx. Cancelling ctx stops processing;
// items still queued are drained without being evaluated.
// Default: 1 worker, buffer size of 10.
func NewPool(ctx context.Context, processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item, blocking while the buffer is full. It returns false
// once the pool is stopped.
func (p *Pool) Submit(item WorkItem) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.workChan <- item:
		return true
	}
}

// IsStopped returns true once the pool's context is done.
func (p *Pool) IsStopped() bool {
	return p.ctx.Err() != nil
}

// Close closes the work channel and waits for all workers to finish, then
// closes the result channel. It is safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.workChan)
		p.wg.Wait()
		close(p.resultChan)
		p.cancel()
	})
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Run evaluates all items and returns their results in input order. Items
// skipped because ctx was cancelled are absent from the result.
func Run(ctx context.Context, items []WorkItem, processFunc ProcessFunc, opts ...PoolOption) []ProcessResult {
	pool := NewPool(ctx, processFunc, opts...)
	pool.Start()

	go func() {
		defer pool.Close()
		for _, item := range items {
			if !pool.Submit(item) {
				return
			}
		}
	}()

	results := make([]ProcessResult, 0, len(items))
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}
