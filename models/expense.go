package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseStatus is the state of a single expense line. Only the default
// Created is assigned by the service; the rest are settable through update.
type ExpenseStatus string

const (
	ExpenseCreated   ExpenseStatus = "Created"
	ExpenseSubmitted ExpenseStatus = "Submitted"
	ExpenseAccepted  ExpenseStatus = "Accepted"
	ExpenseDenied    ExpenseStatus = "Denied"
)

// ValidExpenseStatus reports whether s is one of the known expense statuses.
func ValidExpenseStatus(s ExpenseStatus) bool {
	switch s {
	case ExpenseCreated, ExpenseSubmitted, ExpenseAccepted, ExpenseDenied:
		return true
	}
	return false
}

// Allowed expense categories.
const (
	CategoryTravel         = "Travel"
	CategoryMeals          = "Meals"
	CategoryOfficeSupplies = "Office Supplies"
	CategoryTransportation = "Transportation"
	CategoryAccommodation  = "Accommodation"
	CategoryEntertainment  = "Entertainment"
)

// Categories returns the full list of allowed expense categories.
func Categories() []string {
	return []string{
		CategoryTravel,
		CategoryMeals,
		CategoryOfficeSupplies,
		CategoryTransportation,
		CategoryAccommodation,
		CategoryEntertainment,
	}
}

// ValidCategory reports whether c is an allowed expense category.
func ValidCategory(c string) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single spend line belonging to exactly one report.
type Expense struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	ReportID    string          `json:"reportId" gorm:"size:36;index;not null"`
	Report      *ExpenseReport  `json:"report,omitempty" gorm:"foreignKey:ReportID;references:ID"`
	Category    string          `json:"category" gorm:"size:50;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	ExpenseName string          `json:"expenseName,omitempty" gorm:"size:255"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	ExpenseDate time.Time       `json:"expenseDate" gorm:"type:date;not null"`
	Status      ExpenseStatus   `json:"status" gorm:"size:32;not null;default:'Created'"`
	Attachments []Attachment    `json:"attachments,omitempty" gorm:"foreignKey:ExpenseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
