package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportStatus is the lifecycle state of an expense report.
type ReportStatus string

const (
	ReportCreated   ReportStatus = "Created"
	ReportSubmitted ReportStatus = "Submitted"
	ReportValidated ReportStatus = "Validated"
	ReportDenied    ReportStatus = "Denied"
	ReportPaid      ReportStatus = "Paid"
)

// ValidReportStatus reports whether s is one of the known report statuses.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportCreated, ReportSubmitted, ReportValidated, ReportDenied, ReportPaid:
		return true
	}
	return false
}

// ExpenseReport groups expenses for one purpose and date. TotalAmount is
// derived from the live expense set and never set directly by clients.
type ExpenseReport struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	Purpose     string          `json:"purpose" gorm:"size:255;not null"`
	ReportDate  time.Time       `json:"reportDate" gorm:"type:date;not null"`
	Status      ReportStatus    `json:"status" gorm:"size:32;not null;default:'Created'"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null;default:0"`
	UserID      string          `json:"userId" gorm:"size:100;index"`
	Expenses    []Expense       `json:"expenses,omitempty" gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (ExpenseReport) TableName() string {
	return "expense_reports"
}

func (r *ExpenseReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
