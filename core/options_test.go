package core

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestCfgxConfigProviderLoadsRawValues(t *testing.T) {
	provider := NewCfgxConfigProvider(StaticRawConfigLoader{
		Values: map[string]any{
			"service_name": "ingest",
			"webhook": map[string]any{
				"secret": "s3cr3t",
			},
		},
	})

	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "ingest" {
		t.Fatalf("expected loaded service name, got %q", cfg.ServiceName)
	}
	if cfg.Webhook.Secret != "s3cr3t" {
		t.Fatalf("expected loaded secret, got %q", cfg.Webhook.Secret)
	}
	if cfg.Webhook.EventHeader != "X-Github-Event" {
		t.Fatalf("expected defaults to fill unset fields, got %q", cfg.Webhook.EventHeader)
	}
}

func TestGoOptionsResolverPrecedence(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{
		ServiceName: "from-config",
		Webhook:     WebhookConfig{Secret: "config-secret"},
	}
	runtime := Config{
		Webhook: WebhookConfig{Secret: "runtime-secret"},
	}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve config layers: %v", err)
	}
	if resolved.ServiceName != "from-config" {
		t.Fatalf("expected config layer to override defaults, got %q", resolved.ServiceName)
	}
	if resolved.Webhook.Secret != "runtime-secret" {
		t.Fatalf("expected runtime layer to win, got %q", resolved.Webhook.Secret)
	}
	if resolved.Webhook.DeliveryHeader != "X-Github-Delivery" {
		t.Fatalf("expected defaults to survive merge, got %q", resolved.Webhook.DeliveryHeader)
	}
}

func TestDefaultErrorMapperClassifiesPlainErrors(t *testing.T) {
	if DefaultErrorMapper(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	mapped := DefaultErrorMapper(errors.New("failed to authenticate signature"))
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %v", mapped.Category)
	}
	if mapped.TextCode != HooksErrorUnauthorized {
		t.Fatalf("expected %s, got %q", HooksErrorUnauthorized, mapped.TextCode)
	}

	mapped = DefaultErrorMapper(errors.New("hook is required"))
	if mapped.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %v", mapped.Category)
	}
	if mapped.Code == 0 {
		t.Fatalf("expected http status to be filled in")
	}
}

func TestDefaultErrorMapperPreservesRichErrors(t *testing.T) {
	rich := goerrors.New("hub: hook is nil", goerrors.CategoryBadInput).
		WithTextCode(HooksErrorBadInput)

	mapped := DefaultErrorMapper(rich)
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.TextCode != HooksErrorBadInput {
		t.Fatalf("expected text code to survive, got %q", mapped.TextCode)
	}
	if mapped.Code == 0 {
		t.Fatalf("expected envelope to fill http status")
	}
}
