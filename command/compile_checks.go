package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[DeliverMessage]        = (*DeliverCommand)(nil)
	_ gocmd.Commander[RecordDeliveryMessage] = (*RecordDeliveryCommand)(nil)
)
