package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/config"
	"tradingai-demo/internal/scheduler"
)

// Factory builds an unmounted session for a new id.
type Factory func(id string) (*Session, error)

func NewFactory(cfg config.SimulationConfig, sched scheduler.Scheduler) Factory {
	return func(id string) (*Session, error) {
		return New(id, cfg, sched, nil)
	}
}

// Store keeps mounted sessions keyed by id with an idle TTL.
// Expired or deleted sessions are unmounted.
type Store struct {
	cache   *cache.Cache
	factory Factory
}

func NewStore(ttl time.Duration, factory Factory) *Store {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := cache.New(ttl, cleanup)
	c.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Unmount()
			log.WithField("session", id).Info("session evicted")
		}
	})
	return &Store{cache: c, factory: factory}
}

// Create builds, mounts and stores a new session.
func (st *Store) Create() (*Session, error) {
	id := uuid.NewString()
	s, err := st.factory(id)
	if err != nil {
		return nil, err
	}
	s.Mount()
	st.cache.Set(id, s, cache.DefaultExpiration)
	log.WithField("session", id).Info("session created")
	return s, nil
}

// Get returns the session and refreshes its TTL.
func (st *Store) Get(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	if !st.touch(id, s) {
		return nil, false
	}
	return s, true
}

// touch refreshes the TTL only while the entry is still present, so a
// session evicted after the lookup is never stored again.
func (st *Store) touch(id string, s *Session) bool {
	return st.cache.Replace(id, s, cache.DefaultExpiration) == nil
}

// Delete unmounts and forgets the session. It reports whether it existed.
func (st *Store) Delete(id string) bool {
	if _, ok := st.cache.Get(id); !ok {
		return false
	}
	st.cache.Delete(id)
	return true
}

func (st *Store) Count() int {
	return st.cache.ItemCount()
}

// Sweep evicts expired sessions now instead of waiting for the janitor.
func (st *Store) Sweep() {
	st.cache.DeleteExpired()
}

// Close unmounts every session.
func (st *Store) Close() {
	for id := range st.cache.Items() {
		st.cache.Delete(id)
	}
}
