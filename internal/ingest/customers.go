// Package ingest loads customer lists and statement archives into the
// engine's plain data structures, normalizing the flexible column naming
// that uploaded files arrive with.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/billflow/billflow/internal/model"
)

// customerRow accepts the common column-name variants seen in uploaded
// customer lists. Coalesced into the three canonical fields after parsing.
type customerRow struct {
	Account       string `csv:"account number"`
	AccountNo     string `csv:"account no"`
	AccountPlain  string `csv:"account"`
	AccountAbbrev string `csv:"acct"`
	AccountSnake  string `csv:"account_number"`

	Email        string `csv:"email"`
	EmailDashed  string `csv:"e-mail"`
	EmailAddress string `csv:"email address"`

	CustomerName string `csv:"customer name"`
	Name         string `csv:"name"`
	Customer     string `csv:"customer"`
}

// RowError describes one rejected row. Ingestion continues past it;
// partial success is the norm, not the exception.
type RowError struct {
	Message string `json:"message"`
	Row     int    `json:"row"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// LoadCustomers parses a customer CSV, validating each row. Invalid rows
// are dropped and enumerated in the returned error list, never silently
// coerced.
func LoadCustomers(r io.Reader) ([]model.CustomerRecord, []RowError, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.LazyQuotes = true
		cr.TrimLeadingSpace = true
		return &headerFoldingReader{r: cr}
	})

	var rows []customerRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, nil, fmt.Errorf("failed to parse customer CSV: %w", err)
	}

	customers := make([]model.CustomerRecord, 0, len(rows))
	var rowErrs []RowError

	for i, row := range rows {
		rowNum := i + 2 // 1-indexed plus header

		record := model.CustomerRecord{
			AccountNumber: firstNonEmpty(row.Account, row.AccountNo, row.AccountPlain, row.AccountAbbrev, row.AccountSnake),
			Email:         firstNonEmpty(row.Email, row.EmailDashed, row.EmailAddress),
			CustomerName:  firstNonEmpty(row.CustomerName, row.Name, row.Customer),
		}

		if record.AccountNumber == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "missing account number"})
			continue
		}
		if record.CustomerName == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "missing customer name"})
			continue
		}
		if record.Email == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "missing email"})
			continue
		}
		if _, err := mail.ParseAddress(record.Email); err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid email %q", record.Email)})
			continue
		}

		customers = append(customers, record)
	}

	return customers, rowErrs, nil
}

// headerFoldingReader lowercases and trims the header row so column
// matching is case-insensitive.
type headerFoldingReader struct {
	r    *csv.Reader
	seen bool
}

func (h *headerFoldingReader) Read() ([]string, error) {
	rec, err := h.r.Read()
	if err != nil {
		return rec, err
	}
	if !h.seen {
		h.seen = true
		for i, col := range rec {
			rec[i] = strings.ToLower(strings.TrimSpace(col))
		}
	}
	return rec, nil
}

func (h *headerFoldingReader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		rec, err := h.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
