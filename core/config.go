package core

import (
	"fmt"
	"strings"
)

type WebhookConfig struct {
	Secret          string `koanf:"secret" mapstructure:"secret"`
	EventHeader     string `koanf:"event_header" mapstructure:"event_header"`
	SignatureHeader string `koanf:"signature_header" mapstructure:"signature_header"`
	DeliveryHeader  string `koanf:"delivery_header" mapstructure:"delivery_header"`
}

type Config struct {
	ServiceName string        `koanf:"service_name" mapstructure:"service_name"`
	Webhook     WebhookConfig `koanf:"webhook" mapstructure:"webhook"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "hooks",
		Webhook: WebhookConfig{
			EventHeader:     "X-Github-Event",
			SignatureHeader: "X-Hub-Signature",
			DeliveryHeader:  "X-Github-Delivery",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Webhook.EventHeader) == "" {
		return fmt.Errorf("core: webhook.event_header is required")
	}
	if strings.TrimSpace(c.Webhook.SignatureHeader) == "" {
		return fmt.Errorf("core: webhook.signature_header is required")
	}
	if strings.TrimSpace(c.Webhook.DeliveryHeader) == "" {
		return fmt.Errorf("core: webhook.delivery_header is required")
	}
	return nil
}
