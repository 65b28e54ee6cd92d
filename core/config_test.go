package core

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Webhook.SignatureHeader != "X-Hub-Signature" {
		t.Fatalf("expected github signature header default, got %q", cfg.Webhook.SignatureHeader)
	}
	if cfg.Webhook.Secret != "" {
		t.Fatalf("default config must not carry a secret")
	}
}

func TestConfigValidateRejectsMissingFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceName = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing service name to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Webhook.SignatureHeader = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing signature header to fail validation")
	}
}
