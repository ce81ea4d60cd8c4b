package resource

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/metrics"
	"github.com/aussiebroadwan/ideadesk/pkg/idx"
)

var (
	// ErrCanceled is returned by Task.Wait when the operation was canceled.
	ErrCanceled = errors.New("resource: operation canceled")

	// ErrSuperseded is returned by Task.Wait when a newer operation in the same
	// lane, or a newer write to a collection this result would replace,
	// settled first and this result was dropped.
	ErrSuperseded = errors.New("resource: result superseded by a newer operation")
)

// Pending describes one in-flight operation.
type Pending struct {
	ID      idx.ID    `json:"id"`
	Kind    string    `json:"kind"`
	Target  string    `json:"target,omitempty"`
	Seq     uint64    `json:"seq"`
	Started time.Time `json:"started"`
}

// Status is a point in time view of a slice.
type Status[S any] struct {
	Data    S         `json:"data"`
	Loading bool      `json:"loading"`
	Pending []Pending `json:"pending,omitempty"`
	Error   string    `json:"error,omitempty"`
	Success string    `json:"success,omitempty"`
}

// IsPending reports whether an operation of kind on target is in flight.
// An empty target matches any target.
func (st Status[S]) IsPending(kind, target string) bool {
	for _, p := range st.Pending {
		if p.Kind == kind && (target == "" || p.Target == target) {
			return true
		}
	}
	return false
}

// ErrorHook observes every applied failure, after the slice lock is released.
type ErrorHook func(kind string, err error)

type options struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	message  func(error) string
	onError  ErrorHook
	now      func() time.Time
}

type Option func(*options)

func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMessages sets how failures are turned into the user facing Error.
func WithMessages(fn func(error) string) Option {
	return func(o *options) { o.message = fn }
}

func WithErrorHook(fn ErrorHook) Option {
	return func(o *options) { o.onError = fn }
}

type entry struct {
	info   Pending
	cancel context.CancelFunc
}

// Slice owns one state value and the lifecycle bookkeeping of the operations
// that write to it. The zero value is not usable; call NewSlice.
type Slice[S any] struct {
	name string
	opts options

	mu      sync.Mutex
	state   S
	pending map[idx.ID]*entry
	errMsg  string
	success string
	seq     uint64
	applied map[string]uint64
	written map[any]uint64 // collection pointer -> last applied writer seq

	subMu   sync.Mutex
	subs    map[uint64]func()
	nextSub uint64
}

// NewSlice returns a slice named name starting from initial.
func NewSlice[S any](name string, initial S, opts ...Option) *Slice[S] {
	o := options{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		message:  func(err error) string { return err.Error() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Slice[S]{
		name:    name,
		opts:    o,
		state:   initial,
		pending: make(map[idx.ID]*entry),
		applied: make(map[string]uint64),
		written: make(map[any]uint64),
		subs:    make(map[uint64]func()),
	}
}

func (s *Slice[S]) Name() string { return s.name }

// Snapshot returns the current state and lifecycle flags.
func (s *Slice[S]) Snapshot() Status[S] {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status[S]{
		Data:    s.state,
		Loading: len(s.pending) > 0,
		Error:   s.errMsg,
		Success: s.success,
	}
	if len(s.pending) > 0 {
		st.Pending = make([]Pending, 0, len(s.pending))
		for _, e := range s.pending {
			st.Pending = append(st.Pending, e.info)
		}
		sort.Slice(st.Pending, func(i, j int) bool { return st.Pending[i].Seq < st.Pending[j].Seq })
	}
	return st
}

// Loading reports whether at least one operation is in flight.
func (s *Slice[S]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Update applies a synchronous reducer.
func (s *Slice[S]) Update(fn func(*S)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

// ClearError clears the error message.
func (s *Slice[S]) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// ClearFlash clears both the error and the success message.
func (s *Slice[S]) ClearFlash() {
	s.mu.Lock()
	changed := s.errMsg != "" || s.success != ""
	s.errMsg, s.success = "", ""
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// SetError records msg as the slice error without running an operation.
func (s *Slice[S]) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.notify()
}

// CancelAll cancels every operation in flight.
func (s *Slice[S]) CancelAll() {
	s.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(s.pending))
	for _, e := range s.pending {
		cancels = append(cancels, e.cancel)
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Subscribe registers fn to run after every state change. The returned func
// removes it.
func (s *Slice[S]) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Slice[S]) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
