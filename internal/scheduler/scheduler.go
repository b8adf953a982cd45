// Package scheduler runs the periodic and delayed callbacks that drive the
// simulation. Realtime is backed by timers; Manual advances a virtual clock
// so update logic can be tested without waiting on real time.
package scheduler

import (
	"sync"
	"time"
)

// Job is a handle to a scheduled callback.
type Job interface {
	// Stop cancels the job. After Stop returns, the callback is not running
	// and will never run again. Stop is idempotent. It must not be called
	// from inside the job's own callback.
	Stop()
}

type Scheduler interface {
	// Every runs fn repeatedly with a fixed delay between the end of one
	// invocation and the start of the next. Missed firings are not queued.
	Every(interval time.Duration, fn func()) Job
	// After runs fn once after delay.
	After(delay time.Duration, fn func()) Job
}

// Realtime schedules callbacks on wall-clock timers.
type Realtime struct{}

func NewRealtime() *Realtime { return &Realtime{} }

type realtimeJob struct {
	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	once    sync.Once
}

func newRealtimeJob() *realtimeJob {
	return &realtimeJob{done: make(chan struct{})}
}

// run invokes fn unless the job was stopped. fn runs while holding mu so Stop
// waits for an in-flight invocation.
func (j *realtimeJob) run(fn func()) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped {
		return false
	}
	fn()
	return true
}

func (j *realtimeJob) Stop() {
	j.once.Do(func() {
		close(j.done)
	})
	j.mu.Lock()
	j.stopped = true
	j.mu.Unlock()
}

func (r *Realtime) Every(interval time.Duration, fn func()) Job {
	j := newRealtimeJob()
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()
		for {
			select {
			case <-j.done:
				return
			case <-timer.C:
				if !j.run(fn) {
					return
				}
				timer.Reset(interval)
			}
		}
	}()
	return j
}

func (r *Realtime) After(delay time.Duration, fn func()) Job {
	j := newRealtimeJob()
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-j.done:
		case <-timer.C:
			j.run(fn)
		}
	}()
	return j
}
