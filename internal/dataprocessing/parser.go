package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is the raw dataset as read from disk: one header row and string cells
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// cell returns the value at idx, treating short rows as empty cells
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// LoadOptions configures how a dataset file is read
type LoadOptions struct {
	// Sheet selects the workbook sheet; empty means the first sheet
	Sheet string

	// Comma overrides the CSV delimiter; zero means ','
	Comma rune

	Logger *slog.Logger
}

func (o LoadOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// LoadFile reads a dataset from disk. Workbooks (.xlsx, .xlsm) are read with
// excelize, anything else is treated as a delimited text file.
func LoadFile(path string, opts LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	table, err := LoadCSV(f, opts)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}

	opts.logger().Info("Dataset loaded",
		slog.String("path", path),
		slog.String("format", "csv"),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Header)))

	return table, nil
}

// LoadCSV reads a comma-delimited UTF-8 stream. Rows shorter than the header
// are padded with empty cells; rows longer than the header are malformed.
func LoadCSV(r io.Reader, opts LoadOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("failed to read file: %w", err)}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("malformed csv: %w", err)}
	}

	return tableFromRecords(records)
}

// LoadWorkbook reads one sheet of an Excel workbook
func LoadWorkbook(path string, opts LoadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &LoadError{Path: path, Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}

	table, err := tableFromRecords(rows)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}

	opts.logger().Info("Dataset loaded",
		slog.String("path", path),
		slog.String("format", "xlsx"),
		slog.String("sheet", sheet),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Header)))

	return table, nil
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, &LoadError{Err: errors.New("no columns to parse from file")}
	}

	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		if len(record) > len(header) {
			if !isBlank(record[len(header):]) {
				return nil, &LoadError{Err: fmt.Errorf("malformed row %d: expected %d fields, saw %d", i+2, len(header), len(record))}
			}
			record = record[:len(header)]
		}
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record)
	}

	return &Table{Header: header, Rows: rows}, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
