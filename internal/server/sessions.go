package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/store"
)

// subscriberBuffer is how many undelivered states a slow event stream may queue
const subscriberBuffer = 8

// Idle sessions are dropped from memory by a periodic sweep. Their snapshots
// stay in storage and get rehydrates them on the next request.
const (
	sessionIdleTTL       = 30 * time.Minute
	sessionSweepInterval = 5 * time.Minute
)

// sessionUpdate is what event streams receive after each session change.
type sessionUpdate struct {
	Event builder.Event
	State builder.State
}

// sessionEntry is one live builder session. mu serialises every request
// against the session, which is itself not safe for concurrent use.
type sessionEntry struct {
	mu      sync.Mutex
	id      uuid.UUID
	session *builder.Session

	// lastUsed is guarded by the registry lock.
	lastUsed time.Time

	subsMu sync.Mutex
	subs   map[int]chan sessionUpdate
	nextID int
}

func newSessionEntry(id uuid.UUID, sess *builder.Session) *sessionEntry {
	e := &sessionEntry{
		id:      id,
		session: sess,
		subs:    make(map[int]chan sessionUpdate),
	}
	sess.OnChange(func(ev builder.Event) {
		e.broadcast(sessionUpdate{Event: ev, State: sess.State()})
	})
	return e
}

// subscribe registers an event stream. The returned function unregisters it.
func (e *sessionEntry) subscribe() (<-chan sessionUpdate, func()) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	e.nextID++
	id := e.nextID
	ch := make(chan sessionUpdate, subscriberBuffer)
	e.subs[id] = ch

	return ch, func() {
		e.subsMu.Lock()
		defer e.subsMu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
}

// streaming reports whether any event stream is attached.
func (e *sessionEntry) streaming() bool {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	return len(e.subs) > 0
}

// broadcast hands the update to every stream without blocking; a full stream
// misses the update and catches up on the next one.
func (e *sessionEntry) broadcast(update sessionUpdate) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	for id, ch := range e.subs {
		select {
		case ch <- update:
		default:
			log.Printf("[server] session %s: dropping event for slow subscriber %d", e.id, id)
		}
	}
}

// registry holds the live sessions. Sessions not in memory are rehydrated
// from storage on first use, keyed by their ID.
type registry struct {
	backend storage.Storage
	now     func() time.Time

	mu      sync.Mutex
	entries map[uuid.UUID]*sessionEntry

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// newRegistry creates an empty registry over backend.
func newRegistry(backend storage.Storage) *registry {
	return &registry{
		backend: backend,
		now:     time.Now,
		entries: make(map[uuid.UUID]*sessionEntry),
	}
}

// create starts a new session and persists its empty snapshot so the ID
// survives a restart.
func (r *registry) create(ctx context.Context) (*sessionEntry, error) {
	id := uuid.New()
	st := store.New(r.backend, id.String())
	if err := st.Persist(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	entry := newSessionEntry(id, builder.New(st))

	r.mu.Lock()
	entry.lastUsed = r.now()
	r.entries[id] = entry
	r.mu.Unlock()

	log.Printf("[server] created session %s", id)
	return entry, nil
}

// get returns the session with the given ID, loading it from storage when
// it is not in memory. Storage is read outside the registry lock; when two
// requests load the same session at once the first one stored wins.
func (r *registry) get(ctx context.Context, id uuid.UUID) (*sessionEntry, error) {
	if entry := r.lookup(id); entry != nil {
		return entry, nil
	}

	sess := builder.New(store.New(r.backend, id.String()))
	result := sess.Open(ctx)
	switch result.Status {
	case store.LoadRestored:
	case store.LoadMissing:
		return nil, &ErrSessionNotFound{SessionID: id}
	case store.LoadReadFailed:
		return nil, fmt.Errorf("failed to look up session %s: %w", id, result.Err)
	default:
		log.Printf("[server] session %s opened empty (%s)", id, result.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[id]; ok {
		entry.lastUsed = r.now()
		return entry, nil
	}
	entry := newSessionEntry(id, sess)
	entry.lastUsed = r.now()
	r.entries[id] = entry
	return entry, nil
}

// lookup returns the in-memory entry for id and marks it used, or nil.
func (r *registry) lookup(id uuid.UUID) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil
	}
	entry.lastUsed = r.now()
	return entry
}

// evict drops a session from memory. Its snapshot stays in storage.
func (r *registry) evict(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// sweep evicts sessions unused since cutoff. Sessions with an open event
// stream or a request in progress are kept.
func (r *registry) sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, entry := range r.entries {
		if !entry.lastUsed.Before(cutoff) || entry.streaming() {
			continue
		}
		if !entry.mu.TryLock() {
			continue
		}
		delete(r.entries, id)
		entry.mu.Unlock()
		evicted++
	}
	if evicted > 0 {
		log.Printf("[server] evicted %d idle sessions, %d in memory", evicted, len(r.entries))
	}
	return evicted
}

// startCleanup sweeps sessions idle for longer than ttl every interval until
// stopCleanup is called.
func (r *registry) startCleanup(interval, ttl time.Duration) {
	r.cleanupTicker = time.NewTicker(interval)
	r.cleanupStop = make(chan struct{})
	go func(ticker *time.Ticker, stop chan struct{}) {
		for {
			select {
			case <-ticker.C:
				r.sweep(r.now().Add(-ttl))
			case <-stop:
				return
			}
		}
	}(r.cleanupTicker, r.cleanupStop)
}

// stopCleanup stops the sweep started by startCleanup.
func (r *registry) stopCleanup() {
	if r.cleanupTicker != nil {
		r.cleanupTicker.Stop()
	}
	if r.cleanupStop != nil {
		close(r.cleanupStop)
		r.cleanupStop = nil
	}
}

// size returns the number of sessions held in memory.
func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
