package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type deliveryLogRecord struct {
	bun.BaseModel `bun:"table:hook_deliveries,alias:hd"`

	ID          string    `bun:"id,pk"`
	Event       string    `bun:"event,notnull"`
	DeliveryID  string    `bun:"delivery_id,notnull"`
	Outcome     string    `bun:"outcome,notnull"`
	Reason      string    `bun:"reason"`
	PayloadSize int       `bun:"payload_size,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
