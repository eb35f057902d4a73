package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/iho/payengine/internal/adapter/http/dto"
)

func newSnapshotsCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		retries uint64
	)

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Fetch account snapshots from a running payengine server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fetchSnapshots(os.Stdout, baseURL, timeout, retries)
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the payengine API")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.Flags().Uint64Var(&retries, "retries", 3, "Maximum number of retries")

	return cmd
}

func fetchSnapshots(out io.Writer, baseURL string, timeout time.Duration, retries uint64) error {
	client := &http.Client{Timeout: timeout}

	var body []byte
	operation := func() error {
		resp, err := client.Get(baseURL + "/api/v1/accounts/")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("fetch snapshots: %w", err)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	fmt.Fprintln(out, "client,available,held,total,locked")
	for _, acc := range resp.Accounts {
		fmt.Fprintf(out, "%d,%s,%s,%s,%t\n", acc.Client, acc.Available, acc.Held, acc.Total, acc.Locked)
	}
	return nil
}
