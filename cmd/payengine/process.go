package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/iho/payengine/internal/adapter/csvio"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/infrastructure/logger"
	"github.com/iho/payengine/internal/usecase"
)

func newProcessCmd() *cobra.Command {
	var (
		strict  bool
		backend string
	)

	cmd := &cobra.Command{
		Use:   "process <input.csv>",
		Short: "Process a CSV transaction feed and print account snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.Flags().Changed("strict") {
				cfg.StrictMode = strict
			}
			if cmd.Flags().Changed("backend") {
				cfg.StoreBackend = backend
			}

			return runProcess(cmd.Context(), cfg, args[0], os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject events on precondition failures instead of ignoring them")
	cmd.Flags().StringVar(&backend, "backend", "memory", "account store backend (memory or sharded)")

	return cmd
}

func runProcess(ctx context.Context, cfg *config.Config, path string, out io.Writer) error {
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With().
		Str("run_id", ulid.Make().String()).
		Logger()

	repo, err := newRepository(cfg)
	if err != nil {
		return err
	}

	mode := usecase.ModePermissive
	if cfg.StrictMode {
		mode = usecase.ModeStrict
	}
	engine := usecase.NewEngine(repo, log, nil, mode)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reader := csvio.NewReader(file)
	for {
		event, err := reader.Read()
		if err == io.EOF {
			break
		}

		var rowErr *csvio.RowError
		if errors.As(err, &rowErr) {
			log.Warn().Int("line", rowErr.Line).Err(rowErr.Err).Msg("skipping invalid row")
			continue
		}
		if err != nil {
			// Header mismatch or an unrecoverable decode error: nothing more
			// can be read, but the snapshots gathered so far still go out.
			log.Warn().Err(err).Msg("stopping input decode")
			break
		}

		// Strict-mode rejections are logged, never fatal: one bad event must
		// not abort the stream.
		if err := engine.Apply(ctx, event); err != nil {
			log.Warn().Err(err).Msg("event rejected")
		}
	}

	snaps, err := engine.Snapshots(ctx)
	if err != nil {
		return err
	}
	if err := csvio.NewWriter(out).WriteSnapshots(snaps); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
