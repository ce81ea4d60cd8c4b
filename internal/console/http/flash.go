package http

import (
	"sync"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/state"
)

// Flash clears each slice's error and success message a fixed time after it
// appears. A message replaced before then gets a fresh timer.
type Flash struct {
	ttl    time.Duration
	slots  []*flashSlot
	unsubs []func()
}

type flashSlot struct {
	ttl   time.Duration
	read  func() string
	clear func()

	mu    sync.Mutex
	shown string
	timer *time.Timer
}

// NewFlash binds to every slice of st. Call Stop to release the timers.
func NewFlash(st *state.Store, ttl time.Duration) *Flash {
	f := &Flash{ttl: ttl}
	watch(f, st.Session.Slice())
	watch(f, st.Projects)
	watch(f, st.Clients)
	watch(f, st.Invoices)
	watch(f, st.Users)
	watch(f, st.Content)
	watch(f, st.Social)
	watch(f, st.Reports)
	return f
}

func watch[S any](f *Flash, s *resource.Slice[S]) {
	slot := &flashSlot{
		ttl: f.ttl,
		read: func() string {
			st := s.Snapshot()
			if st.Error == "" && st.Success == "" {
				return ""
			}
			return st.Error + "\x00" + st.Success
		},
		clear: s.ClearFlash,
	}
	f.slots = append(f.slots, slot)
	f.unsubs = append(f.unsubs, s.Subscribe(slot.changed))
	slot.changed()
}

func (s *flashSlot) changed() {
	current := s.read()

	s.mu.Lock()
	defer s.mu.Unlock()

	if current == s.shown {
		return
	}
	s.shown = current
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if current == "" || s.ttl <= 0 {
		return
	}
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(current) })
}

// expire clears the message only if it is still the one the timer was set for.
func (s *flashSlot) expire(message string) {
	if s.read() == message {
		s.clear()
	}
}

func (s *flashSlot) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Stop unsubscribes and cancels pending timers.
func (f *Flash) Stop() {
	for _, u := range f.unsubs {
		u()
	}
	for _, s := range f.slots {
		s.stop()
	}
}
