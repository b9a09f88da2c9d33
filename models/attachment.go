package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is a receipt file stored on disk for one expense. Deleting an
// attachment removes both the blob and the record, so there is no soft-delete
// marker here.
type Attachment struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	ExpenseID    string    `json:"expenseId" gorm:"size:36;index;not null"`
	Expense      *Expense  `json:"expense,omitempty" gorm:"foreignKey:ExpenseID;references:ID"`
	FileName     string    `json:"fileName" gorm:"size:255;not null"`
	OriginalName string    `json:"originalName" gorm:"size:255;not null"`
	MimeType     string    `json:"mimeType" gorm:"size:100;not null"`
	FileSize     int64     `json:"fileSize" gorm:"not null"`
	FilePath     string    `json:"filePath" gorm:"size:500;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
