package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/logger"
	"hisabkitab/internal/models"
	"hisabkitab/internal/services"
	"hisabkitab/internal/upload"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	categoryService    services.CategoryServicer
	receipts           *upload.Store
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	categoryService services.CategoryServicer,
	receipts *upload.Store,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		categoryService:    categoryService,
		receipts:           receipts,
	}
}

// DashboardRequest represents the dashboard query parameters
type DashboardRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Sort      string `form:"sort" binding:"omitempty,sort_field"`
	Order     string `form:"order" binding:"omitempty,sort_order"`
	Q         string `form:"q"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// TransactionForm represents the add/edit transaction form
type TransactionForm struct {
	Date        string  `form:"date"`
	Type        string  `form:"type" binding:"required,transaction_type"`
	Category    string  `form:"category" binding:"required,max=64"`
	Amount      float64 `form:"amount" binding:"required"`
	Description string  `form:"description"`
	Recurring   string  `form:"recurring"`
}

// Dashboard renders the main transaction listing with filters, sorting,
// pagination, overall totals, and the current page's expense breakdown.
func (h *TransactionHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var req DashboardRequest
	// Unusable query parameters fall back to the defaults instead of
	// failing the page.
	if err := c.ShouldBindQuery(&req); err != nil {
		req = DashboardRequest{}
	}
	if req.Sort == "" {
		req.Sort = "date"
	}
	if req.Order == "" {
		req.Order = "desc"
	}

	data, err := h.transactionService.Dashboard(userID, services.DashboardQuery{
		Page:      req.Page,
		SortBy:    req.Sort,
		Order:     req.Order,
		Search:    req.Q,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		flashError(c, err, "/login")
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Transactions":    data.Transactions,
		"TotalIncome":     data.TotalIncome,
		"TotalExpense":    data.TotalExpense,
		"Net":             data.Net,
		"SearchQuery":     req.Q,
		"SortBy":          req.Sort,
		"Order":           req.Order,
		"StartDate":       req.StartDate,
		"EndDate":         req.EndDate,
		"CategoryLabels":  data.CategoryLabels,
		"CategoryAmounts": data.CategoryAmounts,
	})
}

// ArchivedTransactions renders the user's archived transactions
func (h *TransactionHandler) ArchivedTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactions, err := h.transactionService.GetArchivedTransactions(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	render(c, http.StatusOK, "archived_transactions.html", gin.H{
		"Transactions": transactions,
	})
}

// ShowAddTransaction renders the add-transaction form with the user's
// categories for the dropdown.
func (h *TransactionHandler) ShowAddTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	render(c, http.StatusOK, "add_transaction.html", gin.H{
		"Categories": categories,
	})
}

// AddTransaction creates a transaction from the submitted form, storing the
// optional receipt image when its extension is allowlisted. A rejected file
// does not fail the request: the transaction is created without a receipt.
func (h *TransactionHandler) AddTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form TransactionForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, "/add_transaction", "danger", "Please fill in type, category, and a valid amount.")
		return
	}

	receipt := h.saveReceipt(c)

	if _, err := h.transactionService.CreateTransaction(
		userID,
		parseDateOrNow(form.Date),
		models.TransactionType(form.Type),
		form.Category,
		form.Amount,
		form.Description,
		form.Recurring,
		receipt,
	); err != nil {
		flashError(c, err, "/add_transaction")
		return
	}

	redirectWithFlash(c, "/", "success", "Transaction added!")
}

// saveReceipt stores the optional receipt upload and returns the persisted
// filename, or "" when no acceptable file was sent.
func (h *TransactionHandler) saveReceipt(c *gin.Context) string {
	fh, err := c.FormFile("receipt")
	if err != nil || fh == nil || fh.Filename == "" {
		return ""
	}
	if !h.receipts.Allowed(fh.Filename) {
		return ""
	}
	filename, err := h.receipts.Save(fh)
	if err != nil {
		logger.Get().Errorw("failed to save receipt",
			"filename", fh.Filename,
			"error", err.Error(),
		)
		return ""
	}
	return filename
}

// ShowEditTransaction renders the edit form for an owned transaction
func (h *TransactionHandler) ShowEditTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		notFound(c)
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	render(c, http.StatusOK, "edit_transaction.html", gin.H{
		"Transaction": transaction,
		"Categories":  categories,
	})
}

// EditTransaction updates an owned transaction. The stored receipt is not
// editable.
func (h *TransactionHandler) EditTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	var form TransactionForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, fmt.Sprintf("/edit_transaction/%d", transactionID), "danger",
			"Please fill in type, category, and a valid amount.")
		return
	}

	if _, err := h.transactionService.UpdateTransaction(
		userID,
		transactionID,
		parseDateOrNow(form.Date),
		models.TransactionType(form.Type),
		form.Category,
		form.Amount,
		form.Description,
		form.Recurring,
	); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			notFound(c)
			return
		}
		flashError(c, err, "/")
		return
	}

	redirectWithFlash(c, "/", "success", "Transaction updated successfully!")
}

// DeleteTransaction deletes an owned transaction
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			notFound(c)
			return
		}
		flashError(c, err, "/")
		return
	}

	redirectWithFlash(c, "/", "success", "Transaction deleted successfully!")
}

// ArchiveTransaction toggles the archived flag on an owned transaction
func (h *TransactionHandler) ArchiveTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	transaction, err := h.transactionService.ToggleArchived(userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			notFound(c)
			return
		}
		flashError(c, err, "/")
		return
	}

	verb := "unarchived"
	if transaction.Archived {
		verb = "archived"
	}
	redirectWithFlash(c, "/", "success", fmt.Sprintf("Transaction %s successfully!", verb))
}

// TransactionDetails returns one owned transaction as JSON
func (h *TransactionHandler) TransactionDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, apperrors.ErrTransactionNotFound)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          tx.ID,
		"date":        tx.DateString(),
		"type":        tx.Type,
		"category":    tx.Category,
		"amount":      tx.Amount,
		"description": tx.Description,
		"recurring":   tx.Recurring,
		"receipt":     tx.Receipt,
	})
}
