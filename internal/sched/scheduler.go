package sched

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// waiter is one queued request. The scheduler closes ready once the request
// has been counted as active.
type waiter struct {
	ready    chan struct{}
	enqueued uint64 // handover count when the request queued
	since    time.Time
}

// Stats is a point-in-time view of the scheduler.
type Stats struct {
	Active      Category
	ActiveCount int
	Waiting     [NumCategories]int

	// Admissions counts every admitted request, immediate or queued.
	Admissions uint64
	// Handovers counts transfers of the cube to a waiting category.
	Handovers uint64
	// MaxHandoversWaited is the largest number of handovers any queued
	// request sat through before being admitted.
	MaxHandoversWaited uint64
}

// Idle reports whether no request is admitted.
func (s Stats) Idle() bool {
	return s.ActiveCount == 0
}

// TotalWaiting returns the number of queued requests over all categories.
func (s Stats) TotalWaiting() int {
	total := 0
	for _, n := range s.Waiting {
		total += n
	}
	return total
}

// Scheduler admits requests so that only one category is active at a time.
//
// State machine, guarded by mu:
//
//	Idle       active == None, activeCount == 0, no waiters
//	Active(c)  active == c,    activeCount >= 1
//
// A request of the active category joins it only while nobody is queued, so
// a busy category cannot starve the others. When the active count drops to
// zero the next category with waiters is chosen round-robin starting after
// the one that just finished, and all of its waiters are admitted at once.
type Scheduler struct {
	log *slog.Logger

	mu          sync.Mutex
	active      Category
	activeCount int
	queues      [NumCategories][]*waiter

	admissions uint64
	handovers  uint64
	maxWaited  uint64
}

// New creates an idle scheduler. A nil logger discards output.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{log: logger, active: None}
}

// Enter blocks until a request of category c may run.
//
// The wait cannot be cancelled: leaving the queue early would desynchronize
// the waiting counts and the batch release. Callers check their context after
// Enter returns and, if cancelled, skip their work and call Leave.
func (s *Scheduler) Enter(c Category) {
	s.mu.Lock()
	if s.activeCount == 0 || (s.active == c && s.waitingLocked() == 0) {
		s.active = c
		s.activeCount++
		s.admissions++
		s.mu.Unlock()
		recordAdmission(c, false)
		return
	}

	w := &waiter{
		ready:    make(chan struct{}),
		enqueued: s.handovers,
		since:    time.Now(),
	}
	s.queues[c] = append(s.queues[c], w)
	active, waiting := s.active, len(s.queues[c])
	s.mu.Unlock()

	s.log.Debug("request queued",
		slog.String("category", c.String()),
		slog.String("active", active.String()),
		slog.Int("waiting", waiting))

	<-w.ready

	recordAdmission(c, true)
	recordQueueWait(c, time.Since(w.since).Seconds())
}

// Leave reports that a request of category c has finished. The last request
// of the active category hands the cube to the next waiting category.
func (s *Scheduler) Leave(c Category) {
	s.mu.Lock()
	s.activeCount--
	if s.activeCount > 0 {
		s.mu.Unlock()
		return
	}

	s.active = None
	next, released := None, 0
	for i := 1; i <= NumCategories; i++ {
		candidate := Category((int(c) + i) % NumCategories)
		if len(s.queues[candidate]) > 0 {
			next = candidate
			released = s.releaseLocked(candidate)
			break
		}
	}
	s.mu.Unlock()

	if next == None {
		return
	}
	recordHandover(c, next, released)
	s.log.Debug("handover",
		slog.String("from", c.String()),
		slog.String("to", next.String()),
		slog.Int("released", released))
}

// releaseLocked makes c active and admits every queued request of c. Each
// waiter is counted as active before it is woken, so no request can slip in
// between the handover and the batch.
func (s *Scheduler) releaseLocked(c Category) int {
	s.handovers++
	s.active = c

	batch := s.queues[c]
	s.queues[c] = nil
	for _, w := range batch {
		s.activeCount++
		s.admissions++
		if waited := s.handovers - w.enqueued; waited > s.maxWaited {
			s.maxWaited = waited
		}
		close(w.ready)
	}
	return len(batch)
}

func (s *Scheduler) waitingLocked() int {
	total := 0
	for _, q := range s.queues {
		total += len(q)
	}
	return total
}

// Stats returns the current scheduler state.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Active:             s.active,
		ActiveCount:        s.activeCount,
		Admissions:         s.admissions,
		Handovers:          s.handovers,
		MaxHandoversWaited: s.maxWaited,
	}
	for c, q := range s.queues {
		st.Waiting[c] = len(q)
	}
	return st
}
