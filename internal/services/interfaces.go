package services

import (
	"time"

	"hisabkitab/internal/models"
	"hisabkitab/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	Authenticate(username, password string) (*models.User, error)
	UpdateProfile(userID uint, email string, darkMode bool) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// DashboardQuery holds the raw dashboard query parameters. StartDate and
// EndDate are the submitted strings; malformed values are silently ignored
// rather than rejected.
type DashboardQuery struct {
	Page      int
	SortBy    string
	Order     string
	Search    string
	StartDate string
	EndDate   string
}

// DashboardData is everything the dashboard page renders. Totals cover the
// user's entire history while the category breakdown covers only the rows
// on the current page.
type DashboardData struct {
	Transactions    pagination.PageResponse[models.Transaction]
	TotalIncome     float64
	TotalExpense    float64
	Net             float64
	CategoryLabels  []string
	CategoryAmounts []float64
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, date time.Time, txType models.TransactionType, category string, amount float64, description, recurring, receipt string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, date time.Time, txType models.TransactionType, category string, amount float64, description, recurring string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	ToggleArchived(userID, transactionID uint) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	Dashboard(userID uint, query DashboardQuery) (*DashboardData, error)
	GetArchivedTransactions(userID uint) ([]models.Transaction, error)
	GetAllTransactions(userID uint) ([]models.Transaction, error)
}

// MonthSummary aggregates one calendar month of a user's history.
type MonthSummary struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// ReportServicer defines the contract for reporting business logic.
type ReportServicer interface {
	MonthlySummary(userID uint) ([]MonthSummary, error)
}
