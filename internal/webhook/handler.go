// Package webhook is the HTTP boundary: it verifies the platform handshake,
// parses deliveries, and hands batches to the pipeline.
package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samchinmaya/querydesk/internal/directory"
	"github.com/samchinmaya/querydesk/internal/logging"
	"github.com/samchinmaya/querydesk/internal/pipeline"
)

// Handler serves the webhook and admin endpoints.
type Handler struct {
	orch        *pipeline.Orchestrator
	dir         *directory.Directory
	dirPath     string
	verifyToken string
	log         *logging.Logger
}

// NewHandler creates the HTTP handler set. dirPath is the spreadsheet
// reloaded by the admin endpoint.
func NewHandler(orch *pipeline.Orchestrator, dir *directory.Directory, dirPath, verifyToken string, log *logging.Logger) *Handler {
	return &Handler{
		orch:        orch,
		dir:         dir,
		dirPath:     dirPath,
		verifyToken: verifyToken,
		log:         log.Sub("webhook"),
	}
}

// handleVerify answers the Meta subscription handshake: echo the challenge
// when the verify token matches, 403 otherwise.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.verifyToken {
		w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	h.log.Warn().Str("mode", q.Get("hub.mode")).Msg("webhook verification rejected")
	http.Error(w, "verification failed", http.StatusForbidden)
}

// handleWebhook processes one delivery. The platform retries on non-2xx,
// so processing failures are logged and acknowledged: redelivery would
// duplicate replies already sent.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	batch := payload.InboundMessages()
	if err := h.orch.ProcessBatch(r.Context(), batch); err != nil {
		h.log.Error().Err(err).Int("batchSize", len(batch)).Msg("batch processed with failures")
	}

	w.WriteHeader(http.StatusOK)
}

// handleConversation returns the ordered history between a number and the
// business number.
func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	records, err := h.orch.Conversation(r.Context(), number)
	if err != nil {
		h.log.Error().Err(err).Str("number", number).Msg("conversation lookup failed")
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"messages": records})
}

// handleDirectoryReload replaces the directory snapshot from the
// spreadsheet. The swap is atomic; in-flight lookups keep the old snapshot.
func (h *Handler) handleDirectoryReload(w http.ResponseWriter, r *http.Request) {
	records, err := directory.LoadXLSX(h.dirPath)
	if err != nil {
		h.log.Error().Err(err).Str("path", h.dirPath).Msg("directory reload failed")
		http.Error(w, "reload failed", http.StatusInternalServerError)
		return
	}

	h.dir.Replace(records)
	h.log.Info().Int("clients", h.dir.Len()).Msg("directory reloaded")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"clients": h.dir.Len()})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
