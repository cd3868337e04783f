package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/storage"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(storage.NewMemory())

	entry, err := r.create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.id)

	got, err := r.get(ctx, entry.id)
	require.NoError(t, err)
	assert.Same(t, entry, got)
	assert.Equal(t, 1, r.size())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := newRegistry(storage.NewMemory())

	_, err := r.get(context.Background(), uuid.New())
	var notFound *ErrSessionNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestRegistry_RehydratesEvicted(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(storage.NewMemory())

	entry, err := r.create(ctx)
	require.NoError(t, err)
	require.NoError(t, entry.session.SetField(ctx, builder.FieldFullName, "Jane Doe"))

	r.evict(entry.id)
	assert.Equal(t, 0, r.size())

	again, err := r.get(ctx, entry.id)
	require.NoError(t, err)
	assert.NotSame(t, entry, again)
	assert.Equal(t, "Jane Doe", again.session.Document().Personal.FullName)
}

// fakeClock lets tests age sessions without sleeping.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	r := newRegistry(storage.NewMemory())
	r.now = clock.Now

	idle, err := r.create(ctx)
	require.NoError(t, err)
	require.NoError(t, idle.session.SetField(ctx, builder.FieldFullName, "Jane Doe"))
	active, err := r.create(ctx)
	require.NoError(t, err)

	clock.now = clock.now.Add(sessionIdleTTL)
	_, err = r.get(ctx, active.id)
	require.NoError(t, err)

	evicted := r.sweep(clock.now.Add(-sessionIdleTTL / 2))
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, r.size())

	got, err := r.get(ctx, active.id)
	require.NoError(t, err)
	assert.Same(t, active, got)

	restored, err := r.get(ctx, idle.id)
	require.NoError(t, err)
	assert.NotSame(t, idle, restored)
	assert.Equal(t, "Jane Doe", restored.session.Document().Personal.FullName)
}

func TestRegistry_SweepKeepsStreamingAndBusySessions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	r := newRegistry(storage.NewMemory())
	r.now = clock.Now

	streaming, err := r.create(ctx)
	require.NoError(t, err)
	_, unsubscribe := streaming.subscribe()

	busy, err := r.create(ctx)
	require.NoError(t, err)
	busy.mu.Lock()

	clock.now = clock.now.Add(2 * sessionIdleTTL)
	assert.Equal(t, 0, r.sweep(clock.now.Add(-sessionIdleTTL)))
	assert.Equal(t, 2, r.size())

	unsubscribe()
	busy.mu.Unlock()
	assert.Equal(t, 2, r.sweep(clock.now.Add(-sessionIdleTTL)))
	assert.Equal(t, 0, r.size())
}

func TestRegistry_CleanupLoop(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(storage.NewMemory())
	_, err := r.create(ctx)
	require.NoError(t, err)

	r.startCleanup(time.Millisecond, 0)
	defer r.stopCleanup()

	assert.Eventually(t, func() bool { return r.size() == 0 }, time.Second, time.Millisecond)
}

func TestRegistry_ConcurrentRehydrationSharesEntry(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(storage.NewMemory())
	entry, err := r.create(ctx)
	require.NoError(t, err)
	r.evict(entry.id)

	const callers = 8
	got := make([]*sessionEntry, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := r.get(ctx, entry.id)
			assert.NoError(t, err)
			got[i] = e
		}(i)
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, e := range got[1:] {
		assert.Same(t, got[0], e)
	}
	assert.Equal(t, 1, r.size())
}

func TestRegistry_BackendFailure(t *testing.T) {
	backend := storage.NewMemory()
	r := newRegistry(backend)
	require.NoError(t, backend.Close())

	_, err := r.create(context.Background())
	assert.Error(t, err)

	_, err = r.get(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestSessionEntry_Subscribe(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(storage.NewMemory())
	entry, err := r.create(ctx)
	require.NoError(t, err)

	updates, unsubscribe := entry.subscribe()
	require.NoError(t, entry.session.SetField(ctx, builder.FieldFullName, "Jane"))

	select {
	case update := <-updates:
		assert.Equal(t, builder.EventChanged, update.Event.Kind)
		assert.Equal(t, "Jane", update.State.Document.Personal.FullName)
	case <-time.After(time.Second):
		t.Fatal("expected an update")
	}

	unsubscribe()
	_, open := <-updates
	assert.False(t, open, "unsubscribe closes the stream")
	assert.NotPanics(t, unsubscribe, "unsubscribe is idempotent")

	require.NoError(t, entry.session.SetField(ctx, builder.FieldFullName, "Jo"))
}

func TestSessionEntry_SlowSubscriberDropsUpdates(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(storage.NewMemory())
	entry, err := r.create(ctx)
	require.NoError(t, err)

	updates, unsubscribe := entry.subscribe()
	defer unsubscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, entry.session.SetField(ctx, builder.FieldFullName, strings.Repeat("x", i+1)))
	}
	assert.Len(t, updates, subscriberBuffer)
}

func TestEventsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	c, _ := newSessionClient(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		ts.URL+"/session/events?"+middleware.TokenQueryParam+"="+c.token, nil)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	nextEvent := func() (string, string) {
		var event, data string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "" && event != "":
				return event, data
			}
		}
		return "", ""
	}

	event, data := nextEvent()
	assert.Equal(t, "state", event)
	assert.Contains(t, data, `"step":1`)

	c.state(http.MethodPut, "/session/fields/fullName", map[string]string{"value": "Streamed Name"})

	event, data = nextEvent()
	assert.Equal(t, string(builder.EventChanged), event)
	assert.Contains(t, data, "Streamed Name")
}
