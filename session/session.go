// Package session keeps per-visitor carts and order-type selectors in memory.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cafe-ordering-api/cart"
	"cafe-ordering-api/flow"

	"github.com/google/uuid"
)

// State is the mutable part of a session. It is only reachable through Session.Do.
type State struct {
	Cart *cart.Cart
	// Selector is nil until checkout starts and again after an order is placed.
	Selector *flow.Selector
}

type Session struct {
	ID string

	mu    sync.Mutex
	state State
}

// Do runs fn with exclusive access to the session's cart and selector.
func (s *Session) Do(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry), now: time.Now}
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = st.now()
	return e.sess, true
}

// GetOrCreate returns the session for id, or a fresh one with a new id when
// id is empty or unknown. created reports which happened.
func (st *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}
	s := &Session{
		ID:    uuid.NewString(),
		state: State{Cart: cart.New()},
	}
	st.mu.Lock()
	st.sessions[s.ID] = &entry{sess: s, lastSeen: st.now()}
	st.mu.Unlock()
	return s, true
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than idle and returns how many went.
func (st *Store) Sweep(idle time.Duration) int {
	cutoff := st.now().Add(-idle)
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, e := range st.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every idle/4 until ctx is cancelled. idle <= 0 disables it.
func (st *Store) RunSweeper(ctx context.Context, idle time.Duration, log *slog.Logger) error {
	if idle <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(idle / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(idle); n > 0 {
				log.Info("swept idle sessions", slog.Int("count", n), slog.Int("remaining", st.Len()))
			}
		}
	}
}
