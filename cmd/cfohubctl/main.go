// Command cfohubctl is the operator CLI: fixture dumps, payroll CSV exports,
// snapshot inspection and manual job triggers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cfohub/cfohub/cmd/cfohubctl/cli"
	"github.com/cfohub/cfohub/internal/fixtures"
)

var (
	redisAddr    string
	snapshotPath string
	format       string
	logger       = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cfohubctl",
		Short:        "Operate a CFO Hub deployment",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&redisAddr, "redis", envOr("REDIS_ADDR", "127.0.0.1:6379"), "Redis address used by the job queue")
	root.PersistentFlags().StringVar(&snapshotPath, "snapshot", envOr("SNAPSHOT_PATH", "cfohub.db"), "SQLite snapshot database")
	root.PersistentFlags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")

	root.AddCommand(newFixturesCmd(), newFolhaCmd(), newSnapshotCmd(), newJobsCmd())
	return root
}

func newFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "fixtures", Short: "Inspect generated mock data"}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump [resource]",
		Short: "Print a fixture list, or the resource catalogue without args",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := fixtures.NewProvider()
			if err != nil {
				return err
			}
			resource := ""
			if len(args) == 1 {
				resource = args[0]
			}
			return cli.DumpFixtures(cmd.Context(), provider, resource, format, cmd.OutOrStdout())
		},
	})
	return cmd
}

func newFolhaCmd() *cobra.Command {
	var periodo, status string
	cmd := &cobra.Command{Use: "folha", Short: "Payroll line tools"}
	export := &cobra.Command{
		Use:   "export",
		Short: "Write payroll lines as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := cli.OpenWorkspace(cmd.Context(), snapshotPath, logger)
			if err != nil {
				return err
			}
			defer func() { _ = ws.Close() }()
			n, err := ws.ExportFolha(cmd.Context(), periodo, status, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d linhas exportadas\n", n)
			return nil
		},
	}
	export.Flags().StringVar(&periodo, "periodo", "", "period as YYYY-MM")
	export.Flags().StringVar(&status, "status", "", "situacao filter")
	cmd.AddCommand(export, &cobra.Command{
		Use:   "modelo",
		Short: "Write the CSV import template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.WriteFolhaTemplate(cmd.OutOrStdout())
		},
	})
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "snapshot", Short: "Inspect persisted store state"}
	cmd.AddCommand(&cobra.Command{
		Use:   "buckets",
		Short: "List the stores with saved state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := cli.OpenWorkspace(cmd.Context(), snapshotPath, logger)
			if err != nil {
				return err
			}
			defer func() { _ = ws.Close() }()
			buckets, err := ws.Buckets(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range buckets {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
			return nil
		},
	})
	return cmd
}

func newJobsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "jobs", Short: "Trigger and inspect background jobs"}
	trigger := &cobra.Command{
		Use:   "trigger <job> [ids...]",
		Short: "Enqueue a job (" + strings.Join(cli.Triggerable, ", ") + ")",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc := cli.NewJobsCLI(redisAddr)
			defer func() { _ = jc.Close() }()
			info, err := jc.Trigger(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
			return nil
		},
	}
	inspect := &cobra.Command{
		Use:   "inspect",
		Short: "Show default queue depth and scheduled tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jc := cli.NewJobsCLI(redisAddr)
			defer func() { _ = jc.Close() }()
			stats, err := jc.InspectQueue(cmd.Context())
			if err != nil {
				return err
			}
			return cli.Encode(cmd.OutOrStdout(), format, stats)
		},
	}
	cmd.AddCommand(trigger, inspect)
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
