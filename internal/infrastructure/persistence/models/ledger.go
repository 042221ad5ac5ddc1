package models

import (
	"time"

	"github.com/fluxo/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordModel is the persistence model for the Record aggregate root.
type RecordModel struct {
	TenantAggregateModel
	Description     string               `gorm:"type:varchar(500);not null"`
	Amount          decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Type            ledger.RecordType    `gorm:"type:varchar(10);not null;index"`
	Status          ledger.RecordStatus  `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	IsRefund        bool                 `gorm:"not null;default:false"`
	DueDate         time.Time            `gorm:"not null;index"`
	CompetenceDate  *time.Time           `gorm:"index"`
	PaymentDate     *time.Time           `gorm:"index"`
	RubricID        *uuid.UUID           `gorm:"type:uuid;index"`
	RevenueTypeID   *uuid.UUID           `gorm:"type:uuid;index"`
	SeriesID        *uuid.UUID           `gorm:"type:uuid;index"`
	CompanyID       *uuid.UUID           `gorm:"type:uuid;index"`
	BankID          *uuid.UUID           `gorm:"type:uuid"`
	SplitRevenue    ledger.RevenueSplits `gorm:"type:jsonb;default:'[]'"`
	NeedsValidation bool                 `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (RecordModel) TableName() string {
	return "ledger_records"
}

// ToDomain converts the persistence model to a domain Record entity.
func (m *RecordModel) ToDomain() *ledger.Record {
	return &ledger.Record{
		TenantAggregateRoot: m.toTenantAggregateRoot(),
		Description:         m.Description,
		Amount:              m.Amount,
		Type:                m.Type,
		Status:              m.Status,
		IsRefund:            m.IsRefund,
		DueDate:             m.DueDate,
		CompetenceDate:      m.CompetenceDate,
		PaymentDate:         m.PaymentDate,
		RubricID:            m.RubricID,
		RevenueTypeID:       m.RevenueTypeID,
		SeriesID:            m.SeriesID,
		CompanyID:           m.CompanyID,
		BankID:              m.BankID,
		SplitRevenue:        m.SplitRevenue,
		NeedsValidation:     m.NeedsValidation,
	}
}

// FromDomain populates the persistence model from a domain Record entity.
func (m *RecordModel) FromDomain(record *ledger.Record) {
	m.FromDomainTenantAggregateRoot(record.TenantAggregateRoot)
	m.Description = record.Description
	m.Amount = record.Amount
	m.Type = record.Type
	m.Status = record.Status
	m.IsRefund = record.IsRefund
	m.DueDate = record.DueDate
	m.CompetenceDate = record.CompetenceDate
	m.PaymentDate = record.PaymentDate
	m.RubricID = record.RubricID
	m.RevenueTypeID = record.RevenueTypeID
	m.SeriesID = record.SeriesID
	m.CompanyID = record.CompanyID
	m.BankID = record.BankID
	m.SplitRevenue = record.SplitRevenue
	m.NeedsValidation = record.NeedsValidation
}

// RecordModelFromDomain creates a new persistence model from a domain Record.
func RecordModelFromDomain(record *ledger.Record) *RecordModel {
	m := &RecordModel{}
	m.FromDomain(record)
	return m
}

// ChartOfAccountModel is the persistence model for chart-of-accounts rubrics.
type ChartOfAccountModel struct {
	TenantAggregateModel
	ClassificationCode string `gorm:"type:varchar(20);not null;index"`
	ClassificationName string `gorm:"type:varchar(200);not null"`
	CenterCode         string `gorm:"type:varchar(20);not null;index"`
	CenterName         string `gorm:"type:varchar(200);not null"`
	RubricCode         string `gorm:"type:varchar(20);not null;uniqueIndex:idx_chart_tenant_rubric,priority:2"`
	RubricName         string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ChartOfAccountModel) TableName() string {
	return "chart_of_accounts"
}

// ToDomain converts the persistence model to a domain ChartOfAccount entity.
func (m *ChartOfAccountModel) ToDomain() *ledger.ChartOfAccount {
	return &ledger.ChartOfAccount{
		TenantAggregateRoot: m.toTenantAggregateRoot(),
		ClassificationCode:  m.ClassificationCode,
		ClassificationName:  m.ClassificationName,
		CenterCode:          m.CenterCode,
		CenterName:          m.CenterName,
		RubricCode:          m.RubricCode,
		RubricName:          m.RubricName,
	}
}

// FromDomain populates the persistence model from a domain ChartOfAccount.
func (m *ChartOfAccountModel) FromDomain(account *ledger.ChartOfAccount) {
	m.FromDomainTenantAggregateRoot(account.TenantAggregateRoot)
	m.ClassificationCode = account.ClassificationCode
	m.ClassificationName = account.ClassificationName
	m.CenterCode = account.CenterCode
	m.CenterName = account.CenterName
	m.RubricCode = account.RubricCode
	m.RubricName = account.RubricName
}

// ChartOfAccountModelFromDomain creates a new persistence model from a domain ChartOfAccount.
func ChartOfAccountModelFromDomain(account *ledger.ChartOfAccount) *ChartOfAccountModel {
	m := &ChartOfAccountModel{}
	m.FromDomain(account)
	return m
}

// RevenueTypeModel is the persistence model for revenue types.
type RevenueTypeModel struct {
	TenantAggregateModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (RevenueTypeModel) TableName() string {
	return "revenue_types"
}

// ToDomain converts the persistence model to a domain RevenueType entity.
func (m *RevenueTypeModel) ToDomain() *ledger.RevenueType {
	return &ledger.RevenueType{
		TenantAggregateRoot: m.toTenantAggregateRoot(),
		Name:                m.Name,
	}
}

// FromDomain populates the persistence model from a domain RevenueType.
func (m *RevenueTypeModel) FromDomain(revenueType *ledger.RevenueType) {
	m.FromDomainTenantAggregateRoot(revenueType.TenantAggregateRoot)
	m.Name = revenueType.Name
}

// RevenueTypeModelFromDomain creates a new persistence model from a domain RevenueType.
func RevenueTypeModelFromDomain(revenueType *ledger.RevenueType) *RevenueTypeModel {
	m := &RevenueTypeModel{}
	m.FromDomain(revenueType)
	return m
}
