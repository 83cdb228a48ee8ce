package stream

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/lanauthgate/logging"
	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/models"
)

// memorySource is an in-memory audit log
type memorySource struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	hub     *Hub
	fail    error
}

func (s *memorySource) append(action models.ActionKind) models.AuditEntry {
	s.mu.Lock()
	entry := models.AuditEntry{ID: int64(len(s.entries) + 1), Action: action}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	if s.hub != nil {
		s.hub.Publish(entry)
	}
	return entry
}

func (s *memorySource) Tail(ctx context.Context, sinceID int64, limit int) ([]models.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	var out []models.AuditEntry
	for _, e := range s.entries {
		if e.ID > sinceID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

// event is what a recordingSink saw, in order
type event struct {
	entry     *models.AuditEntry
	heartbeat *Heartbeat
}

type recordingSink struct {
	mu     sync.Mutex
	events []event
	failAt int
	notify chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{notify: make(chan struct{}, 100)}
}

func (s *recordingSink) add(e event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.events)+1 >= s.failAt {
		return errors.New("broken pipe")
	}
	s.events = append(s.events, e)
	select {
	case s.notify <- struct{}{}:
	default:
	}
	return nil
}

func (s *recordingSink) SendEntry(ctx context.Context, entry models.AuditEntry) error {
	return s.add(event{entry: &entry})
}

func (s *recordingSink) SendHeartbeat(ctx context.Context, hb Heartbeat) error {
	return s.add(event{heartbeat: &hb})
}

func (s *recordingSink) snapshot() []event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event(nil), s.events...)
}

func (s *recordingSink) waitFor(t *testing.T, cond func([]event) bool) []event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		if events := s.snapshot(); cond(events) {
			return events
		}
		select {
		case <-s.notify:
		case <-deadline:
			t.Fatalf("condition not reached, saw %d events", len(s.snapshot()))
		}
	}
}

func fastSettings() Settings {
	return Settings{BatchLimit: 10, BatchDelay: 5 * time.Millisecond, IdleDelay: 20 * time.Millisecond}
}

func runTailer(t *testing.T, tailer *Tailer, sink Sink) (context.CancelFunc, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tailer.Run(ctx, sink)
		close(done)
	}()
	t.Cleanup(cancel)
	return cancel, done
}

func TestTailer_HeartbeatThenEntry(t *testing.T) {
	source := &memorySource{}
	tailer := NewTailer(source, nil, fastSettings(), nil, logging.Nop())
	sink := newRecordingSink()

	runTailer(t, tailer, sink)

	events := sink.waitFor(t, func(ev []event) bool { return len(ev) >= 1 })
	require.NotNil(t, events[0].heartbeat, "empty log starts with a heartbeat")
	assert.Equal(t, "heartbeat", events[0].heartbeat.Type)
	assert.Equal(t, int64(0), events[0].heartbeat.LastID)

	source.append(models.ActionAPICheck)

	events = sink.waitFor(t, func(ev []event) bool {
		for _, e := range ev {
			if e.entry != nil {
				return true
			}
		}
		return false
	})
	var entries []models.AuditEntry
	for _, e := range events {
		if e.entry != nil {
			entries = append(entries, *e.entry)
		}
	}
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionAPICheck, entries[0].Action)

	// Later heartbeats carry the cursor
	events = sink.waitFor(t, func(ev []event) bool {
		last := ev[len(ev)-1]
		return last.heartbeat != nil && last.heartbeat.LastID == 1
	})
	assert.NotEmpty(t, events)
}

func TestTailer_DeliversInAscendingOrderAcrossBatches(t *testing.T) {
	source := &memorySource{}
	for i := 0; i < 25; i++ {
		source.append(models.ActionLogin)
	}

	tailer := NewTailer(source, nil, fastSettings(), nil, logging.Nop())
	sink := newRecordingSink()
	runTailer(t, tailer, sink)

	events := sink.waitFor(t, func(ev []event) bool {
		n := 0
		for _, e := range ev {
			if e.entry != nil {
				n++
			}
		}
		return n == 25
	})

	var lastID int64
	for _, e := range events {
		if e.entry == nil {
			continue
		}
		assert.Greater(t, e.entry.ID, lastID)
		lastID = e.entry.ID
	}
	assert.Equal(t, int64(25), lastID)
}

func TestTailer_HubWakesIdleWait(t *testing.T) {
	hub := NewHub()
	source := &memorySource{hub: hub}
	settings := fastSettings()
	settings.IdleDelay = time.Hour

	tailer := NewTailer(source, hub, settings, nil, logging.Nop())
	sink := newRecordingSink()
	runTailer(t, tailer, sink)

	sink.waitFor(t, func(ev []event) bool { return len(ev) == 1 })
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, time.Millisecond)

	source.append(models.ActionAddAPI)

	events := sink.waitFor(t, func(ev []event) bool { return len(ev) >= 2 })
	require.NotNil(t, events[1].entry, "entry arrives long before the idle delay")
	assert.Equal(t, models.ActionAddAPI, events[1].entry.Action)
}

func TestTailer_StopsOnCancel(t *testing.T) {
	m := metrics.New()
	tailer := NewTailer(&memorySource{}, NewHub(), fastSettings(), m, logging.Nop())
	sink := newRecordingSink()

	cancel, done := runTailer(t, tailer, sink)
	sink.waitFor(t, func(ev []event) bool { return len(ev) >= 1 })

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tailer did not stop after cancel")
	}
}

func TestTailer_StopsOnSinkFailure(t *testing.T) {
	source := &memorySource{}
	source.append(models.ActionLogin)
	source.append(models.ActionLogin)

	tailer := NewTailer(source, nil, fastSettings(), nil, logging.Nop())
	sink := newRecordingSink()
	sink.failAt = 2

	_, done := runTailer(t, tailer, sink)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tailer did not stop after sink failure")
	}
	assert.Len(t, sink.snapshot(), 1)
}

func TestTailer_KeepsPollingAfterSourceError(t *testing.T) {
	source := &memorySource{fail: errors.New("database is locked")}
	tailer := NewTailer(source, nil, fastSettings(), nil, logging.Nop())
	sink := newRecordingSink()
	runTailer(t, tailer, sink)

	time.Sleep(30 * time.Millisecond)
	source.mu.Lock()
	source.fail = nil
	source.mu.Unlock()

	events := sink.waitFor(t, func(ev []event) bool { return len(ev) >= 1 })
	assert.NotNil(t, events[0].heartbeat)
}

func TestHub_PublishAndUnsubscribe(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch := hub.Subscribe(ctx)
	hub.Publish(models.AuditEntry{ID: 1})

	select {
	case entry := <-ch:
		assert.Equal(t, int64(1), entry.ID)
	case <-time.After(time.Second):
		t.Fatal("no entry published")
	}

	cancel()
	require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, time.Millisecond)
	_, ok := <-ch
	assert.False(t, ok)

	// Publishing without subscribers is a no-op
	hub.Publish(models.AuditEntry{ID: 2})
}

func TestSSESink(t *testing.T) {
	rr := httptest.NewRecorder()
	sink, err := NewSSESink(rr)
	require.NoError(t, err)

	require.NoError(t, sink.SendHeartbeat(context.Background(), Heartbeat{Type: "heartbeat", Timestamp: "t", LastID: 3}))
	require.NoError(t, sink.SendEntry(context.Background(), models.AuditEntry{ID: 4, Action: models.ActionLogin}))

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, ": stream started\n\n"))
	assert.Contains(t, body, `data: {"type":"heartbeat","timestamp":"t","last_id":3}`+"\n\n")
	assert.Contains(t, body, `"id":4`)
	assert.Contains(t, body, `"action":"LOGIN"`)
}
