package engine

import (
	"context"

	"fourline/game"
	"fourline/metrics"
)

// growSlice bounds how many states one scheduling slice may create, so the
// worker stays responsive to commands and cancellation while growing a
// large tree.
const growSlice = 25000

// Status is a snapshot of the game pushed to the host after every growth
// slice.
type Status struct {
	Position [game.Rows][game.Columns]uint8
	Outcome  game.Outcome
	Size     TreeSize
}

// Worker runs a GameManager on a dedicated goroutine and talks to the host
// by message passing, keeping the manager itself single-threaded. Tree
// growth is requested asynchronously and serviced in bounded slices
// between commands.
type Worker struct {
	manager  *GameManager
	requests chan func(*GameManager)
	status   chan Status
	budget   int
	metrics  metrics.Collector
}

// Option configures a Worker.
type Option func(*Worker)

// WithMetrics records growth telemetry on the given collector.
func WithMetrics(c metrics.Collector) Option {
	return func(w *Worker) {
		w.metrics = c
	}
}

func NewWorker(manager *GameManager, options ...Option) *Worker {
	w := &Worker{
		manager:  manager,
		requests: make(chan func(*GameManager)),
		status:   make(chan Status, 8),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// Status delivers a snapshot after every completed growth slice. Snapshots
// are dropped, never queued, when the host falls behind.
func (w *Worker) Status() <-chan Status {
	return w.status
}

// Grow schedules up to n more states of tree growth. It returns once the
// request is accepted, not once the growth is done.
func (w *Worker) Grow(n int) {
	w.requests <- func(*GameManager) {
		w.budget += n
	}
}

// Do runs fn on the engine goroutine and waits for it to finish. It must
// not be called after Run has returned.
func (w *Worker) Do(fn func(*GameManager)) {
	done := make(chan struct{})
	w.requests <- func(m *GameManager) {
		fn(m)
		close(done)
	}
	<-done
}

// Run services commands until the context is cancelled. Pending growth is
// worked off in slices of at most growSlice states, with commands taking
// priority between slices.
func (w *Worker) Run(ctx context.Context) {
	for {
		if w.budget <= 0 {
			select {
			case <-ctx.Done():
				return
			case fn := <-w.requests:
				fn(w.manager)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case fn := <-w.requests:
			fn(w.manager)
		default:
			slice := min(w.budget, growSlice)
			generated := w.manager.TryGenerateStates(slice)
			w.metrics.AddSlice(generated)
			if generated == 0 {
				// the reachable tree is fully expanded
				w.metrics.SetExhausted(true)
				w.budget = 0
			} else {
				w.budget -= generated
			}
			w.pushStatus()
		}
	}
}

func (w *Worker) pushStatus() {
	status := Status{
		Position: w.manager.GetPosition(),
		Outcome:  w.manager.IsGameOver(),
		Size:     w.manager.Size(),
	}
	select {
	case w.status <- status:
	default:
	}
}
