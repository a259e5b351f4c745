package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/estatemanner/hookrelay/pkg/domain/interfaces"
	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// WebhookHandler handles Docker Hub push webhooks
type WebhookHandler struct {
	webhookUC         interfaces.WebhookUseCase
	maxPayloadSize    int64
	processingTimeout time.Duration
	verbose           bool
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		webhookUC: webhookUC,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)
	start := time.Now()

	// Outermost boundary: any fault below surfaces as a generic 500
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Panic while handling webhook",
				"recover", rec,
				"stack", string(debug.Stack()),
			)
			writeJSON(ctx, w, http.StatusInternalServerError, map[string]any{
				"error":              "Internal server error",
				"message":            fmt.Sprintf("%v", rec),
				"processing_time_ms": time.Since(start).Milliseconds(),
			})
		}
	}()

	if r.Method != http.MethodPost {
		logger.Warn("Rejected webhook with unsupported method", "method", r.Method)
		writeJSON(ctx, w, http.StatusMethodNotAllowed, map[string]any{
			"error":   "Method not allowed",
			"allowed": []string{http.MethodPost},
		})
		return
	}

	body := io.Reader(r.Body)
	if h.maxPayloadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxPayloadSize)
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		logger.Warn("Failed to read webhook payload", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, map[string]any{
			"error": "Invalid JSON payload",
		})
		return
	}
	defer r.Body.Close()

	if h.verbose {
		logger.Debug("Received webhook payload",
			"size_bytes", len(payload),
			"payload", string(payload),
		)
	}

	var raw model.RawPushEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		logger.Warn("Failed to parse webhook payload", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, map[string]any{
			"error": "Invalid JSON payload",
		})
		return
	}

	event, violations := h.webhookUC.ValidateEvent(ctx, &raw)
	if len(violations) > 0 {
		logger.Warn("Webhook payload failed validation", "violations", violations)
		writeJSON(ctx, w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid payload",
			"details": violations,
		})
		return
	}

	if h.processingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.processingTimeout)
		defer cancel()
	}

	result, err := h.webhookUC.ProcessEvent(ctx, event)
	if err != nil {
		if errors.Is(err, types.ErrMissingCredential) || errors.Is(err, types.ErrConfigInvalid) {
			logger.Error("Dispatch blocked by configuration error", "error", err)
			writeJSON(ctx, w, http.StatusInternalServerError, map[string]any{
				"error": "Server configuration error",
			})
			return
		}

		logger.Error("Failed to process push event", "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, map[string]any{
			"error":              "Internal server error",
			"message":            err.Error(),
			"processing_time_ms": time.Since(start).Milliseconds(),
		})
		return
	}

	logger.Info("Webhook processed",
		"service", result.Service,
		"environment", result.Environment,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":            true,
		"message":            fmt.Sprintf("dispatched %s to %s", result.Service, result.Environment),
		"service":            result.Service,
		"environment":        result.Environment,
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}
