package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"parking/entity"
)

const auditLogKey = "audit:events"

type AuditRecord struct {
	ID          string          `json:"id"`
	PublishedAt time.Time       `json:"publishedAt"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload"`
}

// AuditLog keeps every published domain event under a single audit key,
// so the full history of the facility can be replayed.
type AuditLog struct {
	kv KV
	mu sync.Mutex
}

func NewAuditLog(kv KV) *AuditLog {
	if kv == nil {
		panic("kv is nil")
	}

	return &AuditLog{kv: kv}
}

func (l *AuditLog) StoreEvent(ctx context.Context, record AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.eventsLocked(ctx)
	if err != nil {
		return err
	}

	for _, existing := range records {
		if existing.ID == record.ID {
			// handling re-delivery
			return nil
		}
	}

	records = append(records, record)

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("could not marshal audit records: %w", err)
	}
	if err := l.kv.Set(ctx, auditLogKey, raw); err != nil {
		return fmt.Errorf("could not store %s event in audit log: %w", record.ID, err)
	}

	return nil
}

func (l *AuditLog) Events(ctx context.Context) ([]AuditRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.eventsLocked(ctx)
}

func (l *AuditLog) eventsLocked(ctx context.Context) ([]AuditRecord, error) {
	raw, err := l.kv.Get(ctx, auditLogKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read audit log: %w", err)
	}

	var records []AuditRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("could not unmarshal audit records: %w", err)
	}

	return records, nil
}

func (l *AuditLog) OnTicketIssued(ctx context.Context, event *entity.TicketIssued) error {
	return l.storeDomainEvent(ctx, event.Header, "TicketIssued", event)
}

func (l *AuditLog) OnTicketPaid(ctx context.Context, event *entity.TicketPaid) error {
	return l.storeDomainEvent(ctx, event.Header, "TicketPaid", event)
}

func (l *AuditLog) storeDomainEvent(ctx context.Context, header entity.EventHeader, name string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal %s event: %w", name, err)
	}

	return l.StoreEvent(ctx, AuditRecord{
		ID:          header.ID,
		PublishedAt: header.PublishedAt,
		Name:        name,
		Payload:     payload,
	})
}
