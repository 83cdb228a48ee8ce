package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coder/websocket"

	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/services"
	"github.com/blogem/lanauthgate/stream"
)

type AuditController struct {
	services *services.Services
	tailer   *stream.Tailer
	logger   *slog.Logger
}

func NewAuditController(services *services.Services, tailer *stream.Tailer, logger *slog.Logger) *AuditController {
	return &AuditController{
		services: services,
		tailer:   tailer,
		logger:   logger,
	}
}

// List returns the newest audit entries, newest first
func (ac *AuditController) List(w http.ResponseWriter, r *http.Request) {
	limit := services.DefaultAuditListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, services.KindValidation, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := ac.services.Audit.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, ac.logger, err, "list audit log")
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Clear empties the audit log
func (ac *AuditController) Clear(w http.ResponseWriter, r *http.Request) {
	if _, err := ac.services.Audit.Clear(r.Context()); err != nil {
		writeServiceError(w, ac.logger, err, "clear audit log")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logs cleared"})
}

// Stream follows the audit log as Server-Sent Events until the client goes away
func (ac *AuditController) Stream(w http.ResponseWriter, r *http.Request) {
	sink, err := stream.NewSSESink(w)
	if err != nil {
		if errors.Is(err, stream.ErrStreamingUnsupported) {
			writeError(w, http.StatusInternalServerError, services.KindInternal, "Streaming unsupported")
			return
		}
		writeServiceError(w, ac.logger, err, "stream audit log")
		return
	}

	ac.tailer.Run(r.Context(), sink)
}

// WebSocket follows the audit log over a WebSocket connection
func (ac *AuditController) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		// Accept has already written the HTTP error
		ac.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// Observers never send; CloseRead cancels ctx once the peer closes
	ctx := conn.CloseRead(r.Context())

	ac.tailer.Run(ctx, stream.NewWebSocketSink(conn))
	_ = conn.Close(websocket.StatusNormalClosure, "")
}
