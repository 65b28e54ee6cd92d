package command

import (
	"context"

	"github.com/goliatone/go-hooks/core"
)

// Deliverer is the hub surface the command layer depends on.
type Deliverer interface {
	Deliver(ctx context.Context, delivery core.Delivery) error
}

type DeliverCommand struct {
	hub Deliverer
}

func NewDeliverCommand(hub Deliverer) *DeliverCommand {
	return &DeliverCommand{hub: hub}
}

func (c *DeliverCommand) Execute(ctx context.Context, msg DeliverMessage) error {
	if c == nil || c.hub == nil {
		return commandDependencyError("command: deliver hub is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.hub.Deliver(ctx, msg.Delivery)
}

type RecordDeliveryCommand struct {
	log core.DeliveryLog
}

func NewRecordDeliveryCommand(log core.DeliveryLog) *RecordDeliveryCommand {
	return &RecordDeliveryCommand{log: log}
}

func (c *RecordDeliveryCommand) Execute(ctx context.Context, msg RecordDeliveryMessage) error {
	if c == nil || c.log == nil {
		return commandDependencyError("command: delivery log is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	_, err := c.log.Record(ctx, msg.Entry)
	return err
}
