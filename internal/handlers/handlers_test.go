package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/middleware"
	"hisabkitab/internal/models"
	"hisabkitab/internal/services"
	"hisabkitab/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// setupRouter builds a router with the real templates loaded, matching the
// configuration in cmd/api.
func setupRouter() *gin.Engine {
	router := gin.New()
	router.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})
	router.LoadHTMLGlob("../../web/templates/*.html")
	return router
}

// injectUser simulates the auth middleware for a logged-in user.
func injectUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("user", user)
	}
}

func testUser() *models.User {
	return &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: "user"}
}

// postForm performs a URL-encoded POST against the router.
func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// flashCookie extracts the queued flash message from the response, if any.
func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *middleware.Flash {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name != "flash" || ck.Value == "" {
			continue
		}
		// Unescape twice: once for gin's cookie encoding, once for the
		// flash encoding itself.
		raw, err := url.QueryUnescape(ck.Value)
		if err != nil {
			t.Fatalf("failed to unescape flash cookie: %v", err)
		}
		value, err := url.QueryUnescape(raw)
		if err != nil {
			t.Fatalf("failed to unescape flash value: %v", err)
		}
		category, message, _ := strings.Cut(value, "|")
		return &middleware.Flash{Category: category, Message: message}
	}
	return nil
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

func assertFlash(t *testing.T, w *httptest.ResponseRecorder, category, message string) {
	t.Helper()
	flash := flashCookie(t, w)
	if flash == nil {
		t.Fatal("expected a flash cookie, got none")
	}
	if flash.Category != category || flash.Message != message {
		t.Errorf("expected flash %s|%s, got %s|%s", category, message, flash.Category, flash.Message)
	}
}

// mockUserService implements services.UserServicer with overridable functions.
type mockUserService struct {
	createUserFn     func(username, email, password string) (*models.User, error)
	authenticateFn   func(username, password string) (*models.User, error)
	getByIDFn        func(id uint) (*models.User, error)
	updateProfileFn  func(userID uint, email string, darkMode bool) (*models.User, error)
	changePasswordFn func(userID uint, current, newPass, confirm string) error
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) CreateUser(username, email, password string) (*models.User, error) {
	return m.createUserFn(username, email, password)
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool { return false }

func (m *mockUserService) Authenticate(username, password string) (*models.User, error) {
	return m.authenticateFn(username, password)
}

func (m *mockUserService) UpdateProfile(userID uint, email string, darkMode bool) (*models.User, error) {
	return m.updateProfileFn(userID, email, darkMode)
}

func (m *mockUserService) ChangePassword(userID uint, current, newPass, confirm string) error {
	return m.changePasswordFn(userID, current, newPass, confirm)
}

// mockCategoryService implements services.CategoryServicer.
type mockCategoryService struct {
	createFn  func(userID uint, name string) (*models.Category, error)
	getUserFn func(userID uint) ([]models.Category, error)
	deleteFn  func(userID, categoryID uint) error
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func (m *mockCategoryService) CreateCategory(userID uint, name string) (*models.Category, error) {
	return m.createFn(userID, name)
}

func (m *mockCategoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	if m.getUserFn != nil {
		return m.getUserFn(userID)
	}
	return nil, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID uint) error {
	return m.deleteFn(userID, categoryID)
}

// mockTransactionService implements services.TransactionServicer.
type mockTransactionService struct {
	createFn      func(userID uint, date time.Time, txType models.TransactionType, category string, amount float64, description, recurring, receipt string) (*models.Transaction, error)
	updateFn      func(userID, transactionID uint, date time.Time, txType models.TransactionType, category string, amount float64, description, recurring string) (*models.Transaction, error)
	deleteFn      func(userID, transactionID uint) error
	toggleFn      func(userID, transactionID uint) (*models.Transaction, error)
	getByIDFn     func(userID, transactionID uint) (*models.Transaction, error)
	dashboardFn   func(userID uint, query services.DashboardQuery) (*services.DashboardData, error)
	getArchivedFn func(userID uint) ([]models.Transaction, error)
	getAllFn      func(userID uint) ([]models.Transaction, error)
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func (m *mockTransactionService) CreateTransaction(userID uint, date time.Time, txType models.TransactionType, category string, amount float64, description, recurring, receipt string) (*models.Transaction, error) {
	return m.createFn(userID, date, txType, category, amount, description, recurring, receipt)
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID uint, date time.Time, txType models.TransactionType, category string, amount float64, description, recurring string) (*models.Transaction, error) {
	return m.updateFn(userID, transactionID, date, txType, category, amount, description, recurring)
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID uint) error {
	return m.deleteFn(userID, transactionID)
}

func (m *mockTransactionService) ToggleArchived(userID, transactionID uint) (*models.Transaction, error) {
	return m.toggleFn(userID, transactionID)
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	return m.getByIDFn(userID, transactionID)
}

func (m *mockTransactionService) Dashboard(userID uint, query services.DashboardQuery) (*services.DashboardData, error) {
	return m.dashboardFn(userID, query)
}

func (m *mockTransactionService) GetArchivedTransactions(userID uint) ([]models.Transaction, error) {
	return m.getArchivedFn(userID)
}

func (m *mockTransactionService) GetAllTransactions(userID uint) ([]models.Transaction, error) {
	return m.getAllFn(userID)
}

// mockReportService implements services.ReportServicer.
type mockReportService struct {
	monthlyFn func(userID uint) ([]services.MonthSummary, error)
}

var _ services.ReportServicer = (*mockReportService)(nil)

func (m *mockReportService) MonthlySummary(userID uint) ([]services.MonthSummary, error) {
	return m.monthlyFn(userID)
}
