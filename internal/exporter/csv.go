package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"procurepulse/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality and writes the other export
// formats to the same output directory
type CSVWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a CSV writer that resolves relative paths against outputDir
func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{outputDir: outputDir, logger: slog.Default()}
}

// WithLogger sets the logger used to report written files
func (w *CSVWriter) WithLogger(logger *slog.Logger) *CSVWriter {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options, replacing any existing file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	return w.WriteFile(filePath, func(out io.Writer) error {
		return Encode(out, options)
	})
}

// WriteFile renders into memory and then replaces filePath, so a render
// failure never leaves a partial file behind.
func (w *CSVWriter) WriteFile(filePath string, render func(io.Writer) error) error {
	fullPath := w.resolvePath(filePath)

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(fullPath), err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullPath, err)
	}

	w.logger.Info("Export written",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("bytes", buf.Len()))
	return nil
}

// Path returns where filePath is written
func (w *CSVWriter) Path(filePath string) string {
	return w.resolvePath(filePath)
}

// WriteOrders writes the order table to filePath with a BOM
func (w *CSVWriter) WriteOrders(filePath string, headers []string, rows []domain.OrderRow) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   OrderRecords(rows),
		BOMPrefix: true,
	})
}

// Encode writes CSV to any writer
func Encode(out io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resolvePath resolves relative paths against the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.outputDir == "" {
		return filePath
	}
	return filepath.Join(w.outputDir, filePath)
}
