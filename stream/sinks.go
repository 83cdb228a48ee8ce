package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/blogem/lanauthgate/models"
)

// ErrStreamingUnsupported is returned when the response writer cannot flush
var ErrStreamingUnsupported = errors.New("stream: streaming unsupported")

// writeTimeout bounds a single WebSocket frame write
const writeTimeout = 5 * time.Second

// SSESink writes events as Server-Sent Events data frames
type SSESink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSESink sets the event-stream headers on w and returns a sink for it
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	// Send an initial comment to establish the stream
	_, _ = w.Write([]byte(": stream started\n\n"))
	flusher.Flush()

	return &SSESink{w: w, flusher: flusher}, nil
}

func (s *SSESink) SendEntry(ctx context.Context, entry models.AuditEntry) error {
	return s.send(entry)
}

func (s *SSESink) SendHeartbeat(ctx context.Context, hb Heartbeat) error {
	return s.send(hb)
}

func (s *SSESink) send(v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WebSocketSink writes events as JSON text messages
type WebSocketSink struct {
	conn *websocket.Conn
}

// NewWebSocketSink wraps an accepted connection
func NewWebSocketSink(conn *websocket.Conn) *WebSocketSink {
	return &WebSocketSink{conn: conn}
}

func (s *WebSocketSink) SendEntry(ctx context.Context, entry models.AuditEntry) error {
	return s.send(ctx, entry)
}

func (s *WebSocketSink) SendHeartbeat(ctx context.Context, hb Heartbeat) error {
	return s.send(ctx, hb)
}

func (s *WebSocketSink) send(ctx context.Context, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return s.conn.Write(ctx, websocket.MessageText, payload)
}
