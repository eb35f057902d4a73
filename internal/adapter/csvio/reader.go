// Package csvio decodes transaction event rows and encodes account
// snapshots in the CSV exchange format.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/payengine/internal/domain"
)

// ErrInvalidHeader is returned when the first record is not the expected
// header row. No events can be decoded from such input.
var ErrInvalidHeader = errors.New("invalid header: expected type,client,tx,amount")

// RowError reports a row that failed validation. The row is skipped; reading
// can continue.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader streams validated events from CSV input. Fields are trimmed of
// surrounding whitespace and the type column is matched case-insensitively.
type Reader struct {
	csv        *csv.Reader
	line       int
	headerSeen bool
}

// NewReader wraps r. The first record must be the header row.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Row shape is validated per record so malformed rows can be reported
	// and skipped instead of aborting the stream.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Read returns the next valid event. A malformed row yields a *RowError so
// the caller can log it and keep reading. io.EOF signals end of input.
func (r *Reader) Read() (domain.Event, error) {
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return domain.Event{}, io.EOF
		}
		r.line++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return domain.Event{}, &RowError{Line: r.line, Err: err}
			}
			return domain.Event{}, err
		}

		if !r.headerSeen {
			r.headerSeen = true
			if err := validateHeader(record); err != nil {
				return domain.Event{}, err
			}
			continue
		}

		event, err := parseRecord(record)
		if err != nil {
			return domain.Event{}, &RowError{Line: r.line, Err: err}
		}
		return event, nil
	}
}

func validateHeader(record []string) error {
	expected := []string{"type", "client", "tx", "amount"}
	if len(record) != len(expected) {
		return ErrInvalidHeader
	}
	for i, field := range record {
		if !strings.EqualFold(strings.TrimSpace(field), expected[i]) {
			return ErrInvalidHeader
		}
	}
	return nil
}

func parseRecord(record []string) (domain.Event, error) {
	// The amount column may be omitted entirely for dispute/resolve/chargeback.
	if len(record) != 3 && len(record) != 4 {
		return domain.Event{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(record))
	}

	kind, err := domain.ParseEventKind(record[0])
	if err != nil {
		return domain.Event{}, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return domain.Event{}, fmt.Errorf("invalid client id %q", record[1])
	}

	txn, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return domain.Event{}, fmt.Errorf("invalid transaction id %q", record[2])
	}

	event := domain.Event{
		Kind:   kind,
		Client: domain.ClientID(client),
		Txn:    domain.TxnID(txn),
	}

	if kind.RequiresAmount() {
		if len(record) < 4 || strings.TrimSpace(record[3]) == "" {
			return domain.Event{}, fmt.Errorf("missing amount for %s", kind)
		}
		amount, err := domain.ParsePositiveDecimal(strings.TrimSpace(record[3]))
		if err != nil {
			return domain.Event{}, fmt.Errorf("invalid amount %q: %w", record[3], err)
		}
		event.Amount = amount
	}
	// Any amount value on dispute/resolve/chargeback rows is ignored.

	return event, nil
}
