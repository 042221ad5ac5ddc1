package ledger

import (
	"time"

	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordCreatedEvent is raised when a new ledger record is created
type RecordCreatedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID       `json:"record_id"`
	Type        RecordType      `json:"record_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"due_date"`
	SeriesID    *uuid.UUID      `json:"series_id,omitempty"`
}

// EventType returns the event type name
func (e *RecordCreatedEvent) EventType() string {
	return "LedgerRecordCreated"
}

// NewRecordCreatedEvent creates a new RecordCreatedEvent
func NewRecordCreatedEvent(record *Record) *RecordCreatedEvent {
	return &RecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerRecordCreated", "LedgerRecord", record.ID, record.TenantID),
		RecordID:        record.ID,
		Type:            record.Type,
		Amount:          record.Amount,
		Description:     record.Description,
		DueDate:         record.DueDate,
		SeriesID:        record.SeriesID,
	}
}

// RecordPaidEvent is raised when a ledger record is settled
type RecordPaidEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID       `json:"record_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
}

// EventType returns the event type name
func (e *RecordPaidEvent) EventType() string {
	return "LedgerRecordPaid"
}

// NewRecordPaidEvent creates a new RecordPaidEvent
func NewRecordPaidEvent(record *Record) *RecordPaidEvent {
	paymentDate := time.Now()
	if record.PaymentDate != nil {
		paymentDate = *record.PaymentDate
	}
	return &RecordPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerRecordPaid", "LedgerRecord", record.ID, record.TenantID),
		RecordID:        record.ID,
		Amount:          record.Amount,
		PaymentDate:     paymentDate,
	}
}

// RecordValidatedEvent is raised when a record pending confirmation is cleared
type RecordValidatedEvent struct {
	shared.BaseDomainEvent
	RecordID uuid.UUID `json:"record_id"`
}

// EventType returns the event type name
func (e *RecordValidatedEvent) EventType() string {
	return "LedgerRecordValidated"
}

// NewRecordValidatedEvent creates a new RecordValidatedEvent
func NewRecordValidatedEvent(record *Record) *RecordValidatedEvent {
	return &RecordValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerRecordValidated", "LedgerRecord", record.ID, record.TenantID),
		RecordID:        record.ID,
	}
}
