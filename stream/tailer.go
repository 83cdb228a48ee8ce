package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/models"
)

// HeartbeatTimestampLayout formats Heartbeat.Timestamp
const HeartbeatTimestampLayout = "2006-01-02T15:04:05.000000"

// Defaults for Settings
const (
	DefaultBatchLimit = 10
	DefaultBatchDelay = 100 * time.Millisecond
	DefaultIdleDelay  = 500 * time.Millisecond
)

// Source reads audit entries newer than sinceID in ascending order
type Source interface {
	Tail(ctx context.Context, sinceID int64, limit int) ([]models.AuditEntry, error)
}

// Sink is one connected observer. A send error means the observer is gone.
type Sink interface {
	SendEntry(ctx context.Context, entry models.AuditEntry) error
	SendHeartbeat(ctx context.Context, hb Heartbeat) error
}

// Heartbeat is sent when a poll finds nothing new
type Heartbeat struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	LastID    int64  `json:"last_id"`
}

// Settings control the polling cadence of a Tailer
type Settings struct {
	BatchLimit int
	BatchDelay time.Duration
	IdleDelay  time.Duration
}

// DefaultSettings returns the standard polling cadence
func DefaultSettings() Settings {
	return Settings{
		BatchLimit: DefaultBatchLimit,
		BatchDelay: DefaultBatchDelay,
		IdleDelay:  DefaultIdleDelay,
	}
}

func (s Settings) withDefaults() Settings {
	if s.BatchLimit <= 0 {
		s.BatchLimit = DefaultBatchLimit
	}
	if s.BatchDelay <= 0 {
		s.BatchDelay = DefaultBatchDelay
	}
	if s.IdleDelay <= 0 {
		s.IdleDelay = DefaultIdleDelay
	}
	return s
}

// Tailer follows the audit log for one observer at a time
type Tailer struct {
	source   Source
	hub      *Hub
	settings Settings
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewTailer creates a tailer. hub and m may be nil; without a hub the idle
// wait always runs to completion.
func NewTailer(source Source, hub *Hub, settings Settings, m *metrics.Metrics, logger *slog.Logger) *Tailer {
	return &Tailer{
		source:   source,
		hub:      hub,
		settings: settings.withDefaults(),
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Run streams the audit log to sink starting from the first entry until ctx
// is done or the sink fails. Both end the stream normally.
func (t *Tailer) Run(ctx context.Context, sink Sink) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := t.logger.With("observer", uuid.NewString())
	logger.Info("observer connected")
	t.metrics.ObserverConnected()
	defer func() {
		t.metrics.ObserverDisconnected()
		logger.Info("observer disconnected")
	}()

	var wake <-chan models.AuditEntry
	if t.hub != nil {
		wake = t.hub.Subscribe(ctx)
	}

	var lastID int64
	for {
		if ctx.Err() != nil {
			return
		}

		entries, err := t.source.Tail(ctx, lastID, t.settings.BatchLimit)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("failed to read audit log", "error", err)
			if !t.wait(ctx, t.settings.IdleDelay, nil) {
				return
			}
			continue
		}

		if len(entries) > 0 {
			for _, entry := range entries {
				if err := sink.SendEntry(ctx, entry); err != nil {
					logger.Debug("failed to send entry", "error", err)
					return
				}
				if entry.ID > lastID {
					lastID = entry.ID
				}
			}
			if !t.wait(ctx, t.settings.BatchDelay, nil) {
				return
			}
			continue
		}

		hb := Heartbeat{
			Type:      "heartbeat",
			Timestamp: t.now().Format(HeartbeatTimestampLayout),
			LastID:    lastID,
		}
		if err := sink.SendHeartbeat(ctx, hb); err != nil {
			logger.Debug("failed to send heartbeat", "error", err)
			return
		}
		if !t.wait(ctx, t.settings.IdleDelay, wake) {
			return
		}
	}
}

// wait sleeps for d or until a notification arrives on wake. It returns
// false once ctx is done.
func (t *Tailer) wait(ctx context.Context, d time.Duration, wake <-chan models.AuditEntry) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-wake:
		drain(wake)
		return ctx.Err() == nil
	}
}

func drain(ch <-chan models.AuditEntry) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
