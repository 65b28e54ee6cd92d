package hub

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-hooks/auth"
	"github.com/goliatone/go-hooks/core"
	glog "github.com/goliatone/go-logger/glog"
)

// EventWildcard matches every event name.
const EventWildcard = "*"

type Option func(*Hub)

func WithLogger(logger core.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(h *Hub) {
		if provider == nil {
			return
		}
		if named := provider.GetLogger("hooks"); named != nil {
			h.logger = glog.Ensure(named)
		}
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(h *Hub) {
		if recorder != nil {
			h.metrics = recorder
		}
	}
}

// WithDeliveryLog is handed to authenticated hooks so verification outcomes
// land in the audit log.
func WithDeliveryLog(log core.DeliveryLog) Option {
	return func(h *Hub) {
		h.deliveryLog = log
	}
}

func WithWebhookConfig(cfg core.WebhookConfig) Option {
	return func(h *Hub) {
		h.webhook = normalizeWebhookConfig(cfg)
	}
}

// Hub fans deliveries out to hooks registered per event name. Registration
// and delivery are safe to interleave from multiple goroutines.
type Hub struct {
	logger      core.Logger
	metrics     core.MetricsRecorder
	deliveryLog core.DeliveryLog
	webhook     core.WebhookConfig

	mu    sync.RWMutex
	hooks map[string][]core.Hook
}

func New(opts ...Option) *Hub {
	hub := &Hub{
		logger:  glog.Nop(),
		metrics: core.NopMetricsRecorder{},
		webhook: core.DefaultConfig().Webhook,
		hooks:   map[string][]core.Hook{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hub)
	}
	return hub
}

// Register attaches a hook to an event name. The wildcard "*" receives every
// delivery. The same event may carry multiple hooks.
func (h *Hub) Register(event string, hook core.Hook) error {
	if h == nil {
		return hubInternal("hub: hub is nil")
	}
	if hook == nil {
		return hubBadInput("hub: hook is nil")
	}
	event = normalizeEvent(event)
	if event == "" {
		return hubBadInput("hub: event name is required")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks[event] = append(h.hooks[event], hook)
	return nil
}

// RegisterAuthenticated wraps hook in the authenticating decorator bound to
// secret before registering it.
func (h *Hub) RegisterAuthenticated(event string, secret string, hook core.Hook) error {
	if h == nil {
		return hubInternal("hub: hub is nil")
	}
	if hook == nil {
		return hubBadInput("hub: hook is nil")
	}
	authenticated := auth.NewAuthenticateHook(secret, hook,
		auth.WithLogger(h.logger),
		auth.WithDeliveryLog(h.deliveryLog),
	)
	return h.Register(event, authenticated)
}

// Deliver hands the delivery to every hook registered for its event, then to
// every wildcard hook. Hooks run synchronously on the calling goroutine.
func (h *Hub) Deliver(ctx context.Context, delivery core.Delivery) error {
	if h == nil {
		return hubInternal("hub: hub is nil")
	}
	event := normalizeEvent(delivery.Event)

	h.mu.RLock()
	matched := append([]core.Hook(nil), h.hooks[event]...)
	if event != EventWildcard {
		matched = append(matched, h.hooks[EventWildcard]...)
	}
	h.mu.RUnlock()

	routed := "true"
	if len(matched) == 0 {
		routed = "false"
		h.logger.Debug("no hook registered for event",
			"event", delivery.Event,
			"delivery_id", delivery.ID,
		)
	}
	h.metrics.IncCounter(ctx, "hooks.deliveries.total", 1, map[string]string{
		"event":  event,
		"routed": routed,
	})

	for _, hook := range matched {
		hook.Handle(delivery)
	}
	return nil
}

// HookCount reports how many hooks are registered for an event, wildcard
// hooks excluded.
func (h *Hub) HookCount(event string) int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.hooks[normalizeEvent(event)])
}

func normalizeEvent(event string) string {
	return strings.TrimSpace(strings.ToLower(event))
}

func normalizeWebhookConfig(cfg core.WebhookConfig) core.WebhookConfig {
	defaults := core.DefaultConfig().Webhook
	if strings.TrimSpace(cfg.EventHeader) == "" {
		cfg.EventHeader = defaults.EventHeader
	}
	if strings.TrimSpace(cfg.SignatureHeader) == "" {
		cfg.SignatureHeader = defaults.SignatureHeader
	}
	if strings.TrimSpace(cfg.DeliveryHeader) == "" {
		cfg.DeliveryHeader = defaults.DeliveryHeader
	}
	return cfg
}
