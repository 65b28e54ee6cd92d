package command

import (
	"strings"

	"github.com/goliatone/go-hooks/core"
)

const (
	TypeDeliver          = "hooks.command.deliver"
	TypeRecordDeliveryID = "hooks.command.delivery_log.record"
)

type DeliverMessage struct {
	Delivery core.Delivery
}

func (DeliverMessage) Type() string { return TypeDeliver }

func (m DeliverMessage) Validate() error {
	if strings.TrimSpace(m.Delivery.Event) == "" {
		return commandValidationError("delivery.event", "event name is required")
	}
	if m.Delivery.Payload == nil {
		return commandValidationError("delivery.payload", "payload is required")
	}
	return nil
}

type RecordDeliveryMessage struct {
	Entry core.DeliveryLogEntry
}

func (RecordDeliveryMessage) Type() string { return TypeRecordDeliveryID }

func (m RecordDeliveryMessage) Validate() error {
	if strings.TrimSpace(m.Entry.Event) == "" {
		return commandValidationError("entry.event", "event name is required")
	}
	switch m.Entry.Outcome {
	case core.DeliveryOutcomeForwarded, core.DeliveryOutcomeRejected:
	default:
		return commandValidationError("entry.outcome", "outcome must be forwarded or rejected")
	}
	return nil
}
