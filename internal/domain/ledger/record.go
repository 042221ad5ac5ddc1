package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fluxo/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordType represents the direction of a ledger record
type RecordType string

const (
	RecordTypeIncome  RecordType = "INCOME"
	RecordTypeExpense RecordType = "EXPENSE"
)

// IsValid checks if the type is a valid RecordType
func (t RecordType) IsValid() bool {
	return t == RecordTypeIncome || t == RecordTypeExpense
}

// String returns the string representation of RecordType
func (t RecordType) String() string {
	return string(t)
}

// RecordStatus represents the settlement status of a ledger record
type RecordStatus string

const (
	RecordStatusPending RecordStatus = "PENDING"
	RecordStatusPaid    RecordStatus = "PAID"
	RecordStatusOverdue RecordStatus = "OVERDUE"
)

// IsValid checks if the status is a valid RecordStatus
func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusPending, RecordStatusPaid, RecordStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of RecordStatus
func (s RecordStatus) String() string {
	return string(s)
}

// IsSettled returns true if the record has been paid
func (s RecordStatus) IsSettled() bool {
	return s == RecordStatusPaid
}

// RevenueSplit attributes a portion of an income record to a revenue type
type RevenueSplit struct {
	RevenueTypeID uuid.UUID       `json:"revenue_type_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// RevenueSplits is a slice of RevenueSplit that implements GORM Scanner/Valuer for JSONB storage
type RevenueSplits []RevenueSplit

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s RevenueSplits) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *RevenueSplits) Scan(value interface{}) error {
	if value == nil {
		*s = RevenueSplits{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("unsupported type for RevenueSplits")
	}

	return json.Unmarshal(bytes, s)
}

// Total returns the sum of all split amounts
func (s RevenueSplits) Total() decimal.Decimal {
	total := decimal.Zero
	for _, split := range s {
		total = total.Add(split.Amount)
	}
	return total
}

// SignedAmount combines a positive magnitude with the record type and refund
// flag into the stored signed amount: normal expenses are negative, expense
// refunds positive, normal income positive, income refunds negative.
func SignedAmount(recordType RecordType, isRefund bool, magnitude decimal.Decimal) decimal.Decimal {
	negative := recordType == RecordTypeExpense
	if isRefund {
		negative = !negative
	}
	if negative {
		return magnitude.Abs().Neg()
	}
	return magnitude.Abs()
}

// Record represents a single financial movement aggregate root.
// Amount is stored signed; IsRefund is persisted explicitly so intent never
// has to be reconstructed from the sign.
type Record struct {
	shared.TenantAggregateRoot
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Type            RecordType      `json:"type"`
	Status          RecordStatus    `json:"status"`
	IsRefund        bool            `json:"is_refund"`
	DueDate         time.Time       `json:"due_date"`
	CompetenceDate  *time.Time      `json:"competence_date"`
	PaymentDate     *time.Time      `json:"payment_date"`
	RubricID        *uuid.UUID      `json:"rubric_id"`
	RevenueTypeID   *uuid.UUID      `json:"revenue_type_id"`
	SplitRevenue    RevenueSplits   `json:"split_revenue"`
	SeriesID        *uuid.UUID      `json:"series_id"`
	CompanyID       *uuid.UUID      `json:"company_id"`
	BankID          *uuid.UUID      `json:"bank_id"`
	NeedsValidation bool            `json:"needs_validation"`
}

// NewRecord creates a new ledger record from a positive magnitude.
// The stored amount is derived from (type, isRefund, magnitude).
func NewRecord(
	tenantID uuid.UUID,
	description string,
	magnitude decimal.Decimal,
	recordType RecordType,
	isRefund bool,
	dueDate time.Time,
) (*Record, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if !recordType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Record type is not valid")
	}
	if magnitude.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	record := &Record{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Description:         description,
		Amount:              SignedAmount(recordType, isRefund, magnitude),
		Type:                recordType,
		Status:              RecordStatusPending,
		IsRefund:            isRefund,
		DueDate:             dueDate,
	}

	record.AddDomainEvent(NewRecordCreatedEvent(record))

	return record, nil
}

// Rewrite replaces the record's descriptive fields and re-derives the signed
// amount from the new magnitude and refund flag. The record type is fixed at
// creation and never changes.
func (r *Record) Rewrite(description string, magnitude decimal.Decimal, isRefund bool, dueDate time.Time) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if magnitude.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	r.Description = description
	r.IsRefund = isRefund
	r.Amount = SignedAmount(r.Type, isRefund, magnitude)
	r.DueDate = dueDate
	r.Touch()
	r.IncrementVersion()
	return nil
}

// SetCompetenceDate sets the accrual-basis date
func (r *Record) SetCompetenceDate(date time.Time) {
	r.CompetenceDate = &date
	r.Touch()
}

// ClassifyByRubric attributes the record to a chart-of-accounts rubric
func (r *Record) ClassifyByRubric(rubricID uuid.UUID) error {
	if rubricID == uuid.Nil {
		return shared.NewDomainError("INVALID_RUBRIC", "Rubric ID cannot be empty")
	}
	r.RubricID = &rubricID
	r.Touch()
	return nil
}

// ClassifyByRevenueType attributes an income record to a single revenue type.
// It is mutually exclusive with split revenue classification.
func (r *Record) ClassifyByRevenueType(revenueTypeID uuid.UUID) error {
	if r.Type != RecordTypeIncome {
		return shared.NewDomainError("INVALID_STATE", "Only income records can be classified by revenue type")
	}
	if revenueTypeID == uuid.Nil {
		return shared.NewDomainError("INVALID_REVENUE_TYPE", "Revenue type ID cannot be empty")
	}
	if len(r.SplitRevenue) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Record already carries split revenue classification")
	}
	r.RevenueTypeID = &revenueTypeID
	r.Touch()
	return nil
}

// ClassifyBySplitRevenue attributes an income record across multiple revenue
// types. The split total must match the record magnitude.
func (r *Record) ClassifyBySplitRevenue(splits RevenueSplits) error {
	if r.Type != RecordTypeIncome {
		return shared.NewDomainError("INVALID_STATE", "Only income records can carry split revenue")
	}
	if len(splits) == 0 {
		return shared.NewDomainError("INVALID_SPLIT", "Split revenue cannot be empty")
	}
	if r.RevenueTypeID != nil {
		return shared.NewDomainError("INVALID_STATE", "Record already carries a single revenue type classification")
	}
	for i, split := range splits {
		if split.RevenueTypeID == uuid.Nil {
			return shared.NewDomainError("INVALID_SPLIT", fmt.Sprintf("Split entry %d is missing a revenue type", i))
		}
		if split.Amount.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_SPLIT", fmt.Sprintf("Split entry %d must have a positive amount", i))
		}
	}
	if !splits.Total().Equal(r.Amount.Abs()) {
		return shared.NewDomainError("INVALID_SPLIT", "Split revenue total must equal the record amount")
	}
	r.SplitRevenue = splits
	r.Touch()
	return nil
}

// MarkPaid settles the record on the given payment date
func (r *Record) MarkPaid(paymentDate time.Time) error {
	if r.Status == RecordStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Record is already paid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	r.Status = RecordStatusPaid
	r.PaymentDate = &paymentDate
	r.Touch()

	r.AddDomainEvent(NewRecordPaidEvent(r))

	return nil
}

// MarkOverdue flags an unpaid record whose due date has passed
func (r *Record) MarkOverdue() error {
	if r.Status == RecordStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid records cannot become overdue")
	}
	r.Status = RecordStatusOverdue
	r.Touch()
	return nil
}

// FlagForValidation excludes the record from reporting until confirmed
func (r *Record) FlagForValidation() {
	r.NeedsValidation = true
	r.Touch()
}

// ClearValidation confirms the record so it re-enters reporting
func (r *Record) ClearValidation() {
	r.NeedsValidation = false
	r.Touch()

	r.AddDomainEvent(NewRecordValidatedEvent(r))
}

// AttachToSeries links the record to an installment series
func (r *Record) AttachToSeries(seriesID uuid.UUID) {
	r.SeriesID = &seriesID
	r.Touch()
}

// Magnitude returns the unsigned amount
func (r *Record) Magnitude() decimal.Decimal {
	return r.Amount.Abs()
}

// HasRevenueClassification reports whether an income record resolves to at
// least one revenue type, either directly or through splits.
func (r *Record) HasRevenueClassification() bool {
	return r.RevenueTypeID != nil || len(r.SplitRevenue) > 0
}

// IsUnclassified reports whether the record resolves to no chart node at all:
// expenses without a rubric, income without any revenue classification.
func (r *Record) IsUnclassified() bool {
	if r.Type == RecordTypeExpense {
		return r.RubricID == nil
	}
	return !r.HasRevenueClassification() && r.RubricID == nil
}
