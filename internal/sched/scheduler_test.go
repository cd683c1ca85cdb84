package sched

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enterAsync calls Enter on a new goroutine and returns a channel closed once
// the request is admitted.
func enterAsync(s *Scheduler, c Category) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		s.Enter(c)
		close(done)
	}()
	return done
}

func waitQueued(t *testing.T, s *Scheduler, c Category, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.Stats().Waiting[c] == n
	}, time.Second, time.Millisecond, "expected %d waiters in %v", n, c)
}

func admitted(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSameCategoryRunsTogether(t *testing.T) {
	s := New(nil)
	s.Enter(Axis0)
	s.Enter(Axis0)
	s.Enter(Axis0)

	st := s.Stats()
	assert.Equal(t, Axis0, st.Active)
	assert.Equal(t, 3, st.ActiveCount)
	assert.Zero(t, st.TotalWaiting())

	s.Leave(Axis0)
	s.Leave(Axis0)
	s.Leave(Axis0)
	st = s.Stats()
	assert.True(t, st.Idle())
	assert.Equal(t, None, st.Active)
	assert.Equal(t, uint64(3), st.Admissions)
}

func TestOtherCategoryWaitsForActive(t *testing.T) {
	s := New(nil)
	s.Enter(Axis1)

	show := enterAsync(s, Showing)
	waitQueued(t, s, Showing, 1)
	assert.False(t, admitted(show))

	s.Leave(Axis1)
	select {
	case <-show:
	case <-time.After(time.Second):
		t.Fatal("showing request was not admitted after the axis drained")
	}

	st := s.Stats()
	assert.Equal(t, Showing, st.Active)
	assert.Equal(t, 1, st.ActiveCount)
	assert.Equal(t, uint64(1), st.Handovers)
	s.Leave(Showing)
	assert.True(t, s.Stats().Idle())
}

func TestNewcomerQueuesBehindOtherWaiters(t *testing.T) {
	s := New(nil)
	s.Enter(Axis0)

	other := enterAsync(s, Axis1)
	waitQueued(t, s, Axis1, 1)

	// Axis0 is active, but someone waits: a new Axis0 request must queue.
	same := enterAsync(s, Axis0)
	waitQueued(t, s, Axis0, 1)
	assert.False(t, admitted(same))

	s.Leave(Axis0)
	<-other
	assert.False(t, admitted(same), "Axis0 newcomer must not overtake Axis1")
	assert.Equal(t, Axis1, s.Stats().Active)

	s.Leave(Axis1)
	<-same
	assert.Equal(t, Axis0, s.Stats().Active)
	s.Leave(Axis0)
}

func TestRoundRobinStartsAfterFinishedCategory(t *testing.T) {
	s := New(nil)
	s.Enter(Showing)

	var mu sync.Mutex
	var order []Category
	var wg sync.WaitGroup
	for _, c := range []Category{Axis2, Axis0, Axis1} {
		wg.Add(1)
		go func(c Category) {
			defer wg.Done()
			s.Enter(c)
			mu.Lock()
			order = append(order, c)
			mu.Unlock()
			s.Leave(c)
		}(c)
		waitQueued(t, s, c, 1)
	}

	s.Leave(Showing)
	wg.Wait()

	assert.Equal(t, []Category{Axis0, Axis1, Axis2}, order)
	assert.True(t, s.Stats().Idle())
}

func TestHandoverReleasesWholeBatch(t *testing.T) {
	s := New(nil)
	s.Enter(Axis0)

	var chans []<-chan struct{}
	for i := 0; i < 5; i++ {
		chans = append(chans, enterAsync(s, Axis2))
	}
	waitQueued(t, s, Axis2, 5)

	s.Leave(Axis0)
	for _, ch := range chans {
		<-ch
	}

	st := s.Stats()
	assert.Equal(t, Axis2, st.Active)
	assert.Equal(t, 5, st.ActiveCount)
	assert.Zero(t, st.TotalWaiting())
	assert.Equal(t, uint64(1), st.MaxHandoversWaited)

	for range chans {
		s.Leave(Axis2)
	}
	assert.True(t, s.Stats().Idle())
}

func TestContentionNeverMixesCategoriesOrStarves(t *testing.T) {
	s := New(nil)

	var inFlight [NumCategories]atomic.Int32
	var violations atomic.Int32
	var perCategory [NumCategories]atomic.Int64

	const workers = 24
	const rounds = 300

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < rounds; i++ {
				c := Category(rng.Intn(NumCategories))
				s.Enter(c)
				inFlight[c].Add(1)
				for other := range inFlight {
					if Category(other) != c && inFlight[other].Load() != 0 {
						violations.Add(1)
					}
				}
				if rng.Intn(8) == 0 {
					time.Sleep(time.Microsecond)
				}
				perCategory[c].Add(1)
				inFlight[c].Add(-1)
				s.Leave(c)
			}
		}(int64(w))
	}
	wg.Wait()

	st := s.Stats()
	assert.Zero(t, violations.Load(), "two categories were active at once")
	assert.True(t, st.Idle())
	assert.Zero(t, st.TotalWaiting())
	assert.Equal(t, uint64(workers*rounds), st.Admissions)
	assert.LessOrEqual(t, st.MaxHandoversWaited, uint64(NumCategories),
		"a queued request waited through more handovers than round-robin allows")

	var total int64
	for c := range perCategory {
		total += perCategory[c].Load()
	}
	assert.Equal(t, int64(workers*rounds), total)
}

func TestAdmissionMetrics(t *testing.T) {
	s := New(nil)
	immediate := admissionsTotal.WithLabelValues(Showing.String(), "immediate")
	queued := admissionsTotal.WithLabelValues(Axis1.String(), "queued")
	before, beforeQueued := testutil.ToFloat64(immediate), testutil.ToFloat64(queued)

	s.Enter(Showing)
	done := enterAsync(s, Axis1)
	waitQueued(t, s, Axis1, 1)
	s.Leave(Showing)
	<-done
	s.Leave(Axis1)

	assert.Equal(t, before+1, testutil.ToFloat64(immediate))
	assert.Equal(t, beforeQueued+1, testutil.ToFloat64(queued))

	cancelled := cancelledTotal.WithLabelValues(Axis2.String())
	beforeCancelled := testutil.ToFloat64(cancelled)
	RecordCancelled(Axis2)
	assert.Equal(t, beforeCancelled+1, testutil.ToFloat64(cancelled))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "axis0", AxisCategory(0).String())
	assert.Equal(t, "axis2", AxisCategory(2).String())
	assert.Equal(t, "showing", Showing.String())
	assert.Equal(t, "none", None.String())
	assert.True(t, Axis1.IsAxis())
	assert.False(t, Showing.IsAxis())
}
