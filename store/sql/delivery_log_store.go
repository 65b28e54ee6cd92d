package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-hooks/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const defaultListLimit = 100

// DeliveryLogStore is the bun-backed delivery audit log.
type DeliveryLogStore struct {
	db   *bun.DB
	repo repository.Repository[*deliveryLogRecord]
}

func NewDeliveryLogStore(db *bun.DB) (*DeliveryLogStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*deliveryLogRecord](db, deliveryLogHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid delivery log repository wiring: %w", err)
		}
	}
	return &DeliveryLogStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *DeliveryLogStore) Record(
	ctx context.Context,
	entry core.DeliveryLogEntry,
) (core.DeliveryLogEntry, error) {
	if s == nil || s.db == nil {
		return core.DeliveryLogEntry{}, fmt.Errorf("sqlstore: delivery log store is not configured")
	}
	entry.Event = strings.TrimSpace(entry.Event)
	if entry.Event == "" {
		return core.DeliveryLogEntry{}, fmt.Errorf("sqlstore: event name is required")
	}
	switch entry.Outcome {
	case core.DeliveryOutcomeForwarded, core.DeliveryOutcomeRejected:
	default:
		return core.DeliveryLogEntry{}, fmt.Errorf("sqlstore: unsupported outcome %q", entry.Outcome)
	}
	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	record := &deliveryLogRecord{
		ID:          entry.ID,
		Event:       entry.Event,
		DeliveryID:  strings.TrimSpace(entry.DeliveryID),
		Outcome:     entry.Outcome,
		Reason:      strings.TrimSpace(entry.Reason),
		PayloadSize: entry.PayloadSize,
		CreatedAt:   entry.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return core.DeliveryLogEntry{}, fmt.Errorf("sqlstore: record delivery outcome: %w", err)
	}
	return deliveryLogToDomain(record), nil
}

func (s *DeliveryLogStore) List(
	ctx context.Context,
	filter core.DeliveryLogFilter,
) ([]core.DeliveryLogEntry, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: delivery log store is not configured")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var records []*deliveryLogRecord
	query := s.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Limit(limit)
	if event := strings.TrimSpace(filter.Event); event != "" {
		query = query.Where("?TableAlias.event = ?", event)
	}
	if outcome := strings.TrimSpace(filter.Outcome); outcome != "" {
		query = query.Where("?TableAlias.outcome = ?", outcome)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("sqlstore: list delivery outcomes: %w", err)
	}

	entries := make([]core.DeliveryLogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, deliveryLogToDomain(record))
	}
	return entries, nil
}

func deliveryLogToDomain(record *deliveryLogRecord) core.DeliveryLogEntry {
	if record == nil {
		return core.DeliveryLogEntry{}
	}
	return core.DeliveryLogEntry{
		ID:          record.ID,
		Event:       record.Event,
		DeliveryID:  record.DeliveryID,
		Outcome:     record.Outcome,
		Reason:      record.Reason,
		PayloadSize: record.PayloadSize,
		CreatedAt:   record.CreatedAt,
	}
}

var _ core.DeliveryLog = (*DeliveryLogStore)(nil)
