package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/payengine/internal/domain"
)

// Writer encodes snapshots in the output record format: one line per client,
// amounts rounded half away from zero to four decimal places.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteSnapshots writes the header followed by one record per snapshot, in
// the order given.
func (w *Writer) WriteSnapshots(snaps []domain.Snapshot) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range snaps {
		record := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			domain.FormatAmount(s.Available),
			domain.FormatAmount(s.Held),
			domain.FormatAmount(s.Total),
			strconv.FormatBool(s.Locked),
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}
