package hooks

import "github.com/goliatone/go-hooks/core"

type Config = core.Config

type WebhookConfig = core.WebhookConfig

type Delivery = core.Delivery

type Hook = core.Hook

type HookFunc = core.HookFunc

type DeliveryLog = core.DeliveryLog

type SecretProvider = core.SecretProvider

var CloneHook = core.CloneHook

func DefaultConfig() Config {
	return core.DefaultConfig()
}
