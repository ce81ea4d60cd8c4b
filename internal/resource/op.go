package resource

import (
	"context"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/ideadesk/internal/metrics"
	"github.com/aussiebroadwan/ideadesk/pkg/idx"
	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
)

// Op describes one asynchronous operation against a slice of state S
// producing R.
type Op[S, R any] struct {
	// Kind names the operation, e.g. "fetch" or "delete".
	Kind string

	// Target is the record the operation acts on, if any.
	Target string

	// Lane groups operations that supersede each other. Empty means Kind, or
	// Kind and Target when Target is set.
	Lane string

	// Success is recorded as the success message when the operation is applied.
	Success string

	Run func(ctx context.Context) (R, error)

	// Reduce merges a successful result into state.
	Reduce func(state *S, result R)

	// Fail adjusts state on an applied failure. Most operations leave it nil.
	Fail func(state *S, err error)

	// Writes returns the collections Reduce modifies. The factories set it.
	Writes func(state *S) []any

	// Replaces marks a result that overwrites the collections in Writes
	// wholesale. Such a result is dropped once a later issued operation
	// writing any of them has been applied.
	Replaces bool
}

// AndThen returns a copy of op that also runs fn after Reduce.
func (op Op[S, R]) AndThen(fn func(state *S, result R)) Op[S, R] {
	prev := op.Reduce
	op.Reduce = func(state *S, result R) {
		if prev != nil {
			prev(state, result)
		}
		fn(state, result)
	}
	return op
}

func (op Op[S, R]) lane() string {
	switch {
	case op.Lane != "":
		return op.Lane
	case op.Target != "":
		return op.Kind + "/" + op.Target
	default:
		return op.Kind
	}
}

// Task is a handle on a dispatched operation.
type Task struct {
	ID  idx.ID
	Seq uint64

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Cancel cancels the operation. Its result, if any, is ignored.
func (t *Task) Cancel() { t.cancel() }

// Done is closed once the operation has settled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the operation settles and returns its failure, ErrCanceled
// or ErrSuperseded.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

func (t *Task) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Dispatch runs op against s in a new goroutine and returns immediately.
func Dispatch[S, R any](ctx context.Context, s *Slice[S], op Op[S, R]) *Task {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.seq++
	task := &Task{
		ID:     idx.New(),
		Seq:    s.seq,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	info := Pending{
		ID:      task.ID,
		Kind:    op.Kind,
		Target:  op.Target,
		Seq:     task.Seq,
		Started: s.opts.now(),
	}
	s.pending[task.ID] = &entry{info: info, cancel: cancel}
	s.errMsg, s.success = "", ""
	inflight := len(s.pending)
	s.mu.Unlock()

	s.opts.recorder.SetInflight(s.name, inflight)
	s.notify()

	runCtx := slogx.WithContext(ctx, slogx.FromContextOr(ctx, s.opts.logger).With(
		"slice", s.name,
		"op", op.Kind,
		"op_id", task.ID.String(),
	))
	go func() {
		defer cancel()
		result, err := runSafely(runCtx, op.Run)
		settle(ctx, s, task, info, op, result, err)
	}()

	return task
}

func runSafely[R any](ctx context.Context, run func(context.Context) (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return run(ctx)
}

type panicError struct{ value any }

func (p *panicError) Error() string { return fmt.Sprintf("operation panicked: %v", p.value) }

// overtaken reports whether any of the collections was last written by an
// operation issued after seq. Callers hold s.mu.
func (s *Slice[S]) overtaken(collections []any, seq uint64) bool {
	for _, c := range collections {
		if s.written[c] > seq {
			return true
		}
	}
	return false
}

func settle[S, R any](ctx context.Context, s *Slice[S], task *Task, info Pending, op Op[S, R], result R, err error) {
	lane := op.lane()
	elapsed := s.opts.now().Sub(info.Started)

	s.mu.Lock()
	delete(s.pending, task.ID)
	inflight := len(s.pending)

	var written []any
	if op.Writes != nil {
		written = op.Writes(&s.state)
	}

	var (
		outcome metrics.Outcome
		waitErr error
	)
	switch {
	case ctx.Err() != nil:
		outcome, waitErr = metrics.OutcomeCanceled, ErrCanceled
	case info.Seq <= s.applied[lane], op.Replaces && s.overtaken(written, info.Seq):
		outcome, waitErr = metrics.OutcomeStale, ErrSuperseded
	case err != nil:
		s.applied[lane] = info.Seq
		s.errMsg = s.opts.message(err)
		if op.Fail != nil {
			op.Fail(&s.state, err)
		}
		outcome, waitErr = metrics.OutcomeRejected, err
	default:
		s.applied[lane] = info.Seq
		if op.Reduce != nil {
			op.Reduce(&s.state, result)
		}
		for _, c := range written {
			s.written[c] = max(s.written[c], info.Seq)
		}
		s.errMsg = ""
		if op.Success != "" {
			s.success = op.Success
		}
		outcome = metrics.OutcomeFulfilled
	}
	s.mu.Unlock()

	log := s.opts.logger.With(
		"slice", s.name,
		"op", op.Kind,
		"op_id", task.ID.String(),
		"seq", info.Seq,
		"outcome", string(outcome),
		"duration_ms", elapsed.Milliseconds(),
	)
	if outcome == metrics.OutcomeRejected {
		log.Warn("slice_op", "err", err)
	} else {
		log.Debug("slice_op")
	}

	s.opts.recorder.SetInflight(s.name, inflight)
	s.opts.recorder.ObserveOperation(s.name, op.Kind, outcome, elapsed)

	s.notify()
	if outcome == metrics.OutcomeRejected && s.opts.onError != nil {
		s.opts.onError(op.Kind, err)
	}
	task.finish(waitErr)
}
