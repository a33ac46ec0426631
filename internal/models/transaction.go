package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial transaction in the system.
// Category is a free-text label, not a reference to a Category row.
// Recurring is stored but never acted upon by any scheduler.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Type        TransactionType `gorm:"size:20;not null" json:"type"`
	Category    string          `gorm:"size:64;not null" json:"category"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
	Recurring   string          `gorm:"size:20;default:none" json:"recurring"`
	Receipt     string          `gorm:"size:120" json:"receipt,omitempty"`
	Archived    bool            `gorm:"default:false" json:"archived"`
	UserID      uint            `gorm:"not null" json:"user_id"`
}

// DateString returns the transaction date formatted as YYYY-MM-DD,
// the format used by exports and JSON responses.
func (t *Transaction) DateString() string {
	return t.Date.Format("2006-01-02")
}

// MonthKey returns the YYYY-MM grouping key used by monthly reports.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
