package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/export"
	"hisabkitab/internal/services"
)

// ReportHandler handles reports, exports, and the transactions API
type ReportHandler struct {
	transactionService services.TransactionServicer
	reportService      services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(transactionService services.TransactionServicer, reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{
		transactionService: transactionService,
		reportService:      reportService,
	}
}

// Reports renders the monthly income/expense report
func (h *ReportHandler) Reports(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	summaries, err := h.reportService.MonthlySummary(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	render(c, http.StatusOK, "reports.html", gin.H{
		"Summaries": summaries,
	})
}

// ExportCSV streams the user's full transaction history as a CSV attachment
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactions, err := h.transactionService.GetAllTransactions(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=transactions.csv")
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, transactions); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}

// Backup sends the user's full transaction history as a pretty-printed
// JSON attachment
func (h *ReportHandler) Backup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactions, err := h.transactionService.GetAllTransactions(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	body, err := export.MarshalBackup(transactions)
	if err != nil {
		flashError(c, apperrors.Wrap(apperrors.ErrInternalServer, err), "/")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=backup.json")
	c.Data(http.StatusOK, "application/json", body)
}

// APITransactions returns the user's full transaction history as a JSON array
func (h *ReportHandler) APITransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetAllTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, export.Records(transactions))
}
