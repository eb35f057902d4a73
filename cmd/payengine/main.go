package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/payengine/internal/adapter/repository/memory"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/usecase"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payengine",
		Short: "Transaction event ledger",
		Long: `payengine maintains per-client account balances from a feed of
deposit, withdrawal, dispute, resolve and chargeback events.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSnapshotsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRepository selects the account store backend.
func newRepository(cfg *config.Config) (usecase.AccountRepository, error) {
	switch cfg.StoreBackend {
	case "sharded":
		return memory.NewShardedStore(cfg.ShardCount), nil
	case "memory", "":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
