package models

// User represents the user model in the database
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:120" json:"email"`
	Password string `gorm:"size:128;not null" json:"-"`
	Role     string `gorm:"size:20;default:user" json:"role"`
	DarkMode bool   `gorm:"default:false" json:"dark_mode"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
