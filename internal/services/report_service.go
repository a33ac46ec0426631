package services

import (
	"sort"

	"gorm.io/gorm"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/models"
)

// reportService handles reporting business logic.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// MonthlySummary groups all of the user's transactions by calendar month,
// summing income and expense separately. Any non-income type counts toward
// the expense bucket. Months come back in ascending order.
func (s *reportService) MonthlySummary(userID uint) ([]MonthSummary, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthly := make(map[string]*MonthSummary)
	for i := range transactions {
		tx := &transactions[i]
		key := tx.MonthKey()
		summary, ok := monthly[key]
		if !ok {
			summary = &MonthSummary{Month: key}
			monthly[key] = summary
		}
		if tx.Type == models.TransactionTypeIncome {
			summary.Income += tx.Amount
		} else {
			summary.Expense += tx.Amount
		}
	}

	months := make([]string, 0, len(monthly))
	for key := range monthly {
		months = append(months, key)
	}
	sort.Strings(months)

	summaries := make([]MonthSummary, 0, len(months))
	for _, key := range months {
		summaries = append(summaries, *monthly[key])
	}
	return summaries, nil
}
