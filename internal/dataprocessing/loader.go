package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "metadash/internal/errors"
)

// ctxCheckInterval is how many rows are read between cancellation checks
const ctxCheckInterval = 1000

// LoadCSV reads the header and at most maxRows data rows of the CSV file at
// path. maxRows <= 0 reads every row. Rows may have any number of fields.
func LoadCSV(ctx context.Context, path string, maxRows int) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInputError("failed to open dataset", err).WithContext("path", path)
	}
	defer file.Close()

	table, err := ReadCSV(ctx, file, maxRows)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	table.Source = path
	return table, nil
}

// ReadCSV is LoadCSV over an arbitrary reader
func ReadCSV(ctx context.Context, r io.Reader, maxRows int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewInputError("dataset is empty", err)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read header", err)
	}

	header = normalizeHeader(header)

	capacity := maxRows
	if capacity <= 0 || capacity > 1<<16 {
		capacity = 1024
	}
	rows := make([][]string, 0, capacity)

	for maxRows <= 0 || len(rows) < maxRows {
		if len(rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read row %d", len(rows)+1), err)
		}
		rows = append(rows, record)
	}

	table, err := NewTable(header, rows)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to build table", err)
	}
	return table, nil
}

// normalizeHeader trims names and removes a UTF-8 byte order mark
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		out[i] = strings.TrimSpace(col)
	}
	return out
}
