package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/models"
	"hisabkitab/internal/pagination"
)

const dateLayout = "2006-01-02"

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a new transaction for a user
func (s *transactionService) CreateTransaction(
	userID uint,
	date time.Time,
	txType models.TransactionType,
	category string,
	amount float64,
	description string,
	recurring string,
	receipt string,
) (*models.Transaction, error) {
	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}
	if recurring == "" {
		recurring = "none"
	}

	transaction := &models.Transaction{
		Date:        date,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: description,
		Recurring:   recurring,
		Receipt:     receipt,
		UserID:      userID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// UpdateTransaction edits an existing transaction. The stored receipt is
// never changed by an edit.
func (s *transactionService) UpdateTransaction(
	userID uint,
	transactionID uint,
	date time.Time,
	txType models.TransactionType,
	category string,
	amount float64,
	description string,
	recurring string,
) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}
	if recurring == "" {
		recurring = "none"
	}

	updates := map[string]interface{}{
		"date":        date,
		"type":        txType,
		"category":    category,
		"amount":      amount,
		"description": description,
		"recurring":   recurring,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction deletes a transaction
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ToggleArchived flips the archived flag and returns the updated transaction.
func (s *transactionService) ToggleArchived(userID, transactionID uint) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(transaction).Update("archived", !transaction.Archived).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
// Ownership mismatch is indistinguishable from nonexistence.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Dashboard composes the dashboard view: the filtered, sorted, paginated
// page of non-archived transactions, income/expense totals over the user's
// entire history, and a per-category expense breakdown over the current
// page's rows only.
func (s *transactionService) Dashboard(userID uint, query DashboardQuery) (*DashboardData, error) {
	page := pagination.PageRequest{Page: query.Page}
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ? AND archived = ?", userID, false)

	if query.Search != "" {
		like := "%" + query.Search + "%"
		base = base.Where("category LIKE ? OR description LIKE ?", like, like)
	}
	// Malformed date strings are silently ignored, not rejected.
	if query.StartDate != "" {
		if start, err := time.Parse(dateLayout, query.StartDate); err == nil {
			base = base.Where("date >= ?", start)
		}
	}
	if query.EndDate != "" {
		if end, err := time.Parse(dateLayout, query.EndDate); err == nil {
			base = base.Where("date <= ?", end)
		}
	}

	// New session so the composed conditions can back both the count and
	// the page query.
	base = base.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	direction := "DESC"
	if query.Order == "asc" {
		direction = "ASC"
	}
	listQuery := base.Scopes(pagination.Paginate(page))
	switch query.SortBy {
	case "amount":
		listQuery = listQuery.Order("amount " + direction)
	case "date":
		listQuery = listQuery.Order("date " + direction)
	}

	var transactions []models.Transaction
	if err := listQuery.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalIncome, err := s.sumByType(userID, models.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.sumByType(userID, models.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	labels, amounts := categoryBreakdown(transactions)

	return &DashboardData{
		Transactions:    pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems),
		TotalIncome:     totalIncome,
		TotalExpense:    totalExpense,
		Net:             totalIncome - totalExpense,
		CategoryLabels:  labels,
		CategoryAmounts: amounts,
	}, nil
}

// sumByType sums amounts over all of the user's transactions of a type,
// archived rows included.
func (s *transactionService) sumByType(userID uint, txType models.TransactionType) (float64, error) {
	var total float64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// categoryBreakdown totals expense amounts per category over the given rows,
// keeping first-appearance order.
func categoryBreakdown(transactions []models.Transaction) ([]string, []float64) {
	totals := make(map[string]float64)
	var labels []string
	for i := range transactions {
		tx := &transactions[i]
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			labels = append(labels, tx.Category)
		}
		totals[tx.Category] += tx.Amount
	}
	amounts := make([]float64, 0, len(labels))
	for _, label := range labels {
		amounts = append(amounts, totals[label])
	}
	return labels, amounts
}

// GetArchivedTransactions retrieves the user's archived transactions, newest first.
func (s *transactionService) GetArchivedTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND archived = ?", userID, true).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetAllTransactions retrieves the user's full history, newest first,
// unfiltered by archived status. Used by reports and exports.
func (s *transactionService) GetAllTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
