// Package parallel runs independent matching attempts concurrently across a
// fixed worker pool. Each attempt owns its own reducer.Reducer and
// pimatch.PreMatchingProblem; the pool never shares engine state across
// workers, since pkg/pimatch itself is single-threaded and synchronous.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/lambdapi-match/pimatch/internal/trace"
	"github.com/lambdapi-match/pimatch/pkg/pimatch"
	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// ErrPoolShutdown is returned when trying to submit an attempt to a
// shutdown Pool.
var ErrPoolShutdown = fmt.Errorf("parallel: pool has been shutdown")

// Attempt is one independent matching attempt: a problem and the reducer it
// should be solved against. NewReducer is called once per attempt, inside
// the worker that runs it, so that no Reducer value is ever touched by more
// than one goroutine.
type Attempt struct {
	Problem    pimatch.PreMatchingProblem
	NewReducer func() reducer.Reducer
}

// Result is one attempt's outcome, tagged with the attempt ID it was
// submitted under.
type Result struct {
	AttemptID uuid.UUID
	Substs    []term.Lazy
	Ok        bool
}

// Pool manages a fixed number of worker goroutines, each running attempts
// to completion one at a time: a buffered task channel feeding a fixed
// goroutine pool, with graceful shutdown.
type Pool struct {
	maxWorkers   int
	taskChan     chan task
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

type task struct {
	id      uuid.UUID
	attempt Attempt
	results chan<- Result
}

// NewPool creates a pool with the given number of workers. A non-positive
// count defaults to the number of CPU cores.
func NewPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	p := &Pool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan task, maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for {
		select {
		case t := <-p.taskChan:
			r := t.attempt.NewReducer()
			ctx := trace.WithAttemptID(context.Background(), t.id.String())
			substs, ok := pimatch.SolveProblem(ctx, r, t.attempt.Problem)
			t.results <- Result{AttemptID: t.id, Substs: substs, Ok: ok}
		case <-p.shutdownChan:
			return
		}
	}
}

// Submit enqueues attempt for execution and returns the ID it was tagged
// with. It blocks until the task queue has room or ctx is cancelled.
func (p *Pool) Submit(ctx context.Context, attempt Attempt, results chan<- Result) (uuid.UUID, error) {
	select {
	case <-p.shutdownChan:
		return uuid.UUID{}, ErrPoolShutdown
	default:
	}
	id := uuid.New()
	select {
	case p.taskChan <- task{id: id, attempt: attempt, results: results}:
		return id, nil
	case <-ctx.Done():
		return uuid.UUID{}, ctx.Err()
	case <-p.shutdownChan:
		return uuid.UUID{}, ErrPoolShutdown
	}
}

// SolveAll runs every attempt concurrently across the pool and returns
// their results in submission order. It is the common case — a caller
// with a batch of independent rules to try against a batch of independent
// terms, none of which need to see each other's outcome.
func (p *Pool) SolveAll(ctx context.Context, attempts []Attempt) ([]Result, error) {
	results := make(chan Result, len(attempts))
	ids := make([]uuid.UUID, len(attempts))

	for i, a := range attempts {
		id, err := p.Submit(ctx, a, results)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	byID := make(map[uuid.UUID]Result, len(attempts))
	for range attempts {
		select {
		case r := <-results:
			byID[r.AttemptID] = r
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	out := make([]Result, len(attempts))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out, nil
}

// Shutdown stops accepting new attempts and waits for in-flight workers to
// finish their current task.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		p.workerWg.Wait()
	})
}
