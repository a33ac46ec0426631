// Package export serializes a user's full transaction history for the
// CSV download, JSON backup, and JSON API endpoints.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"hisabkitab/internal/models"
)

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{"ID", "Date", "Type", "Category", "Amount", "Description"}

// Record is the flat per-transaction field set shared by the JSON backup
// and the transactions API.
type Record struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Records maps transactions to their export representation, preserving order.
func Records(txs []models.Transaction) []Record {
	records := make([]Record, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		records = append(records, Record{
			ID:          tx.ID,
			Date:        tx.DateString(),
			Type:        string(tx.Type),
			Category:    tx.Category,
			Amount:      tx.Amount,
			Description: tx.Description,
		})
	}
	return records
}

// WriteCSV writes the header row followed by one row per transaction.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range txs {
		tx := &txs[i]
		row := []string{
			strconv.FormatUint(uint64(tx.ID), 10),
			tx.DateString(),
			string(tx.Type),
			tx.Category,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalBackup renders the pretty-printed JSON backup document.
func MarshalBackup(txs []models.Transaction) ([]byte, error) {
	return json.MarshalIndent(Records(txs), "", "    ")
}
