package hub

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-hooks/core"
	"github.com/google/uuid"
)

// FromRequest builds a Delivery from an HTTP request using the configured
// header names. The body is read fully so verification always runs over the
// exact bytes received; a missing delivery id header gets a generated uuid.
func FromRequest(req *http.Request, cfg core.WebhookConfig) (core.Delivery, error) {
	if req == nil {
		return core.Delivery{}, hubBadInput("hub: http request is nil")
	}
	cfg = normalizeWebhookConfig(cfg)

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return core.Delivery{}, hubWrapBadInput(err, "hub: read request body")
	}

	headers := make(map[string]string, len(req.Header))
	for name := range req.Header {
		headers[name] = req.Header.Get(name)
	}

	deliveryID := strings.TrimSpace(req.Header.Get(cfg.DeliveryHeader))
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	return core.Delivery{
		ID:         deliveryID,
		Event:      strings.TrimSpace(req.Header.Get(cfg.EventHeader)),
		Signature:  strings.TrimSpace(req.Header.Get(cfg.SignatureHeader)),
		Payload:    payload,
		Headers:    headers,
		ReceivedAt: time.Now().UTC(),
	}, nil
}

// ServeHTTP acknowledges every parseable delivery. The response is the same
// whether or not a signature verified; outcomes surface only in logs and
// the delivery log.
func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	delivery, err := FromRequest(req, h.webhookConfig())
	if err != nil {
		http.Error(w, "unreadable delivery", http.StatusBadRequest)
		return
	}
	if err := h.Deliver(req.Context(), delivery); err != nil {
		http.Error(w, "delivery dispatch failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte(`{"status":"accepted"}`))
}

func (h *Hub) webhookConfig() core.WebhookConfig {
	if h == nil {
		return core.DefaultConfig().Webhook
	}
	return h.webhook
}

var _ http.Handler = (*Hub)(nil)
