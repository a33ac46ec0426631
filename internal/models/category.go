package models

// Category represents a user-managed category name. Transactions store the
// category as free text, so deleting a Category never touches transactions.
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:64;not null;uniqueIndex:idx_user_category" json:"name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_user_category" json:"user_id"`
}
