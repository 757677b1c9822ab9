// Package exporter writes and reads the pipeline's tabular artifacts.
// Every output is a UTF-8 comma-delimited file; writing and re-reading a
// table reproduces the same rows.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func WriteCSV(filePath string, options WriteOptions) error {
	slog.Debug("writing CSV file",
		slog.String("path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return apperrors.NewStorageError("failed to open file", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSimpleCSV writes a CSV file with headers and records
func WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return WriteCSV(filePath, WriteOptions{
		Headers: headers,
		Records: records,
	})
}

// Table is the in-memory form of a delimited artifact.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadCSV reads a delimited artifact back into memory. A UTF-8 BOM on the
// first header cell is stripped so written files round-trip.
func ReadCSV(filePath string) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err)
	}
	if len(all) == 0 {
		return &Table{}, nil
	}

	headers := all[0]
	if len(headers) > 0 {
		headers[0] = stripBOM(headers[0])
	}

	return &Table{Headers: headers, Rows: all[1:]}, nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewStreamWriter creates a streaming CSV writer and emits the header row.
func NewStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write headers", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func stripBOM(s string) string {
	const bom = "\xef\xbb\xbf"
	if len(s) >= 3 && s[:3] == bom {
		return s[3:]
	}
	return s
}
