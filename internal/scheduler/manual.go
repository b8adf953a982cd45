package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual-clock scheduler. Nothing fires until Advance is called.
// Callbacks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu   sync.Mutex
	now  time.Duration
	seq  int
	jobs map[int]*manualJob
}

type manualJob struct {
	m        *Manual
	id       int
	due      time.Duration
	interval time.Duration // zero for one-shot jobs
	fn       func()
}

func NewManual() *Manual {
	return &Manual{jobs: map[int]*manualJob{}}
}

func (m *Manual) Every(interval time.Duration, fn func()) Job {
	return m.add(interval, interval, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) Job {
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	j := &manualJob{m: m, id: m.seq, due: m.now + delay, interval: interval, fn: fn}
	m.jobs[j.id] = j
	return j
}

func (j *manualJob) Stop() {
	j.m.mu.Lock()
	delete(j.m.jobs, j.id)
	j.m.mu.Unlock()
}

// Advance moves the virtual clock forward by d, firing every job that comes
// due in due-time order. Periodic jobs are rescheduled at due+interval.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			delete(m.jobs, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *Manual) nextDueLocked(target time.Duration) *manualJob {
	candidates := make([]*manualJob, 0, len(m.jobs))
	for _, j := range m.jobs {
		if j.due <= target {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].due == candidates[b].due {
			return candidates[a].id < candidates[b].id
		}
		return candidates[a].due < candidates[b].due
	})
	return candidates[0]
}

// Now is the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending is the number of live jobs.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}
