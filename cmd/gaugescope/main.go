package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "gaugescope",
		Short:        "Audit gauge changes in governance proposal pull requests",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runPullRequest,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().String("rpc-mainnet", "", "Ethereum mainnet RPC URL")
	root.PersistentFlags().String("rpc-arbitrum", "", "Arbitrum RPC URL")
	root.PersistentFlags().String("rpc-polygon", "", "Polygon RPC URL")
	root.PersistentFlags().String("rpc-gnosis", "", "Gnosis RPC URL")
	root.PersistentFlags().String("rpc-optimism", "", "Optimism RPC URL")
	root.PersistentFlags().String("rpc-extra", "", "extra network RPC URLs (comma-separated name=url)")
	root.PersistentFlags().Duration("rpc-timeout", 0, "per-call RPC timeout, 0 means none")
	root.PersistentFlags().String("root", ".", "repository checkout root")
	root.PersistentFlags().String("output", "output.txt", "combined report path")
	root.PersistentFlags().String("addressbook", "", "flat JSON address book")
	root.PersistentFlags().String("gauge-controller", "", "gauge controller address, overrides the address book")
	root.PersistentFlags().String("gauge-adder", "", "gauge adder address, overrides the address book")
	root.PersistentFlags().String("rows-out", "", "optional JSONL path for report rows")
	root.PersistentFlags().String("pg-dsn", "", "optional Postgres DSN for report rows")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.Flags().String("proposal-dir", "BIPs/", "directory holding proposal payloads")
	root.Flags().Int("github-retries", 3, "attempts per GitHub API page")

	inspectCmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Audit local proposal files without contacting GitHub",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}
	root.AddCommand(inspectCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func elapsed(start time.Time) zap.Field {
	return zap.Duration("elapsed", time.Since(start))
}
