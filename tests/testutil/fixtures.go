// Package testutil provides shared helpers for end-to-end ledger tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/adapter/csvio"
	"github.com/iho/payengine/internal/adapter/repository/memory"
	"github.com/iho/payengine/internal/usecase"
)

// NewEngine builds a permissive engine over a fresh in-memory store.
func NewEngine(t *testing.T) *usecase.Engine {
	t.Helper()

	return usecase.NewEngine(memory.NewStore(), zerolog.Nop(), nil, usecase.ModePermissive)
}

// ApplyCSV feeds the CSV contents into the engine, skipping invalid rows the
// way the process command does, and returns the snapshot output as a CSV
// string without a trailing newline.
func ApplyCSV(t *testing.T, engine *usecase.Engine, contents string) string {
	t.Helper()

	ctx := context.Background()
	reader := csvio.NewReader(strings.NewReader(contents))
	for {
		event, err := reader.Read()
		if err == io.EOF {
			break
		}

		var rowErr *csvio.RowError
		if errors.As(err, &rowErr) {
			t.Logf("skipping invalid row: %v", rowErr)
			continue
		}
		if err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}

		if err := engine.Apply(ctx, event); err != nil {
			t.Fatalf("unexpected apply error: %v", err)
		}
	}

	return Snapshots(t, engine)
}

// Snapshots renders the engine's current snapshots as a CSV string without a
// trailing newline.
func Snapshots(t *testing.T, engine *usecase.Engine) string {
	t.Helper()

	snaps, err := engine.Snapshots(context.Background())
	if err != nil {
		t.Fatalf("unexpected snapshot error: %v", err)
	}

	var buf bytes.Buffer
	if err := csvio.NewWriter(&buf).WriteSnapshots(snaps); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}
