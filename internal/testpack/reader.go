package testpack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clinical-risk-gateway/internal/domain"
)

// ErrMissingColumns is returned when a header lacks columns the row layout needs.
var ErrMissingColumns = errors.New("test pack header is missing columns")

// Row is one parsed test-pack record. Err is set, and Input nil, when the record
// failed to parse; the reader carries on with the next record.
type Row struct {
	Line  int
	ID    string
	Input *domain.Input
	Err   error
}

// Reader reads QRisk3 test-pack rows from CSV.
//
// By default the first record is a header and columns are matched to QRisk3Columns by
// name, case-insensitively and in any order; extra columns are ignored. Header-less
// files need Positional, which takes columns in QRisk3Columns order.
type Reader struct {
	csv        *csv.Reader
	positional bool
	started    bool
	index      []int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// Positional reads header-less files using the fixed column order.
func Positional() ReaderOption {
	return func(r *Reader) {
		r.positional = true
	}
}

// WithComma sets the field delimiter.
func WithComma(comma rune) ReaderOption {
	return func(r *Reader) {
		r.csv.Comma = comma
	}
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	reader := &Reader{csv: cr}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Read returns the next row, or io.EOF after the last one. A non-nil error other than
// io.EOF means the file itself is unusable; per-row problems are reported in Row.Err.
func (r *Reader) Read() (*Row, error) {
	if !r.started {
		r.started = true
		if err := r.init(); err != nil {
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	line, _ := r.csv.FieldPos(0)

	values := record
	if !r.positional {
		values = make([]string, len(r.index))
		for i, col := range r.index {
			if col < len(record) {
				values[i] = record[col]
			} else {
				values = nil
				break
			}
		}
	}

	row := &Row{Line: line}
	if len(values) > 0 {
		row.ID = strings.TrimSpace(values[0])
	}
	if values == nil {
		row.Err = fmt.Errorf("%w: got %d, want at least %d", ErrRowLength, len(record), r.width())
		return row, nil
	}
	row.Input, row.Err = ParseQRisk3Row(values)
	return row, nil
}

// ReadAll reads every remaining row.
func (r *Reader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func (r *Reader) init() error {
	if r.positional {
		return nil
	}

	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return fmt.Errorf("failed to read test pack header: %w", err)
	}

	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.ToLower(strings.TrimSpace(name))] = i
	}

	r.index = make([]int, len(QRisk3Columns))
	var missing []string
	for i, name := range QRisk3Columns {
		col, ok := byName[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		r.index[i] = col
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

func (r *Reader) width() int {
	n := 0
	for _, col := range r.index {
		if col+1 > n {
			n = col + 1
		}
	}
	return n
}
