package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"hisabkitab/internal/export"
	"hisabkitab/internal/models"
	"hisabkitab/internal/services"
)

func exportFixtures() []models.Transaction {
	return []models.Transaction{
		{
			ID: 1, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type: models.TransactionTypeExpense, Category: "food",
			Amount: 10.5, Description: "lunch",
		},
		{
			ID: 2, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Type: models.TransactionTypeIncome, Category: "salary",
			Amount: 1000,
		},
	}
}

func TestExportCSV(t *testing.T) {
	txSvc := &mockTransactionService{
		getAllFn: func(userID uint) ([]models.Transaction, error) {
			return exportFixtures(), nil
		},
	}
	handler := NewReportHandler(txSvc, &mockReportService{})

	router := setupRouter()
	router.GET("/export_csv", injectUser(testUser()), handler.ExportCSV)

	w := get(router, "/export_csv")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=transactions.csv" {
		t.Errorf("unexpected Content-Disposition: %s", got)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("unexpected Content-Type: %s", got)
	}

	want := "ID,Date,Type,Category,Amount,Description\n" +
		"1,2024-01-01,expense,food,10.5,lunch\n" +
		"2,2024-01-10,income,salary,1000,\n"
	if w.Body.String() != want {
		t.Errorf("unexpected CSV body:\n%s", w.Body.String())
	}
}

func TestBackup(t *testing.T) {
	txSvc := &mockTransactionService{
		getAllFn: func(userID uint) ([]models.Transaction, error) {
			return exportFixtures(), nil
		},
	}
	handler := NewReportHandler(txSvc, &mockReportService{})

	router := setupRouter()
	router.GET("/backup", injectUser(testUser()), handler.Backup)

	w := get(router, "/backup")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=backup.json" {
		t.Errorf("unexpected Content-Disposition: %s", got)
	}

	var records []export.Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON backup: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Date != "2024-01-01" || records[1].Category != "salary" {
		t.Errorf("unexpected records: %+v", records)
	}

	// The backup is pretty-printed for hand inspection.
	if !strings.Contains(w.Body.String(), "\n    ") {
		t.Error("expected an indented JSON document")
	}
}

func TestAPITransactions(t *testing.T) {
	txSvc := &mockTransactionService{
		getAllFn: func(userID uint) ([]models.Transaction, error) {
			return exportFixtures(), nil
		},
	}
	handler := NewReportHandler(txSvc, &mockReportService{})

	router := setupRouter()
	router.GET("/api/transactions", injectUser(testUser()), handler.APITransactions)

	w := get(router, "/api/transactions")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var records []export.Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestReports(t *testing.T) {
	reportSvc := &mockReportService{
		monthlyFn: func(userID uint) ([]services.MonthSummary, error) {
			return []services.MonthSummary{
				{Month: "2024-01", Income: 100, Expense: 40},
				{Month: "2024-02", Income: 50, Expense: 0},
			}, nil
		},
	}
	handler := NewReportHandler(&mockTransactionService{}, reportSvc)

	router := setupRouter()
	router.GET("/reports", injectUser(testUser()), handler.Reports)

	w := get(router, "/reports")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"2024-01", "2024-02", "100.00", "40.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}
