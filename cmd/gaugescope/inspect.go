package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gaugeScope/internal/config"
)

func runInspect(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	local, err := config.LoadLocalContext(ctx, nil)
	if err != nil {
		return err
	}

	logger.Info("inspect start", zap.Strings("files", args), zap.String("commit", local.CommitSHA))

	p, err := newPipeline(ctx, cfg, local.CommitSHA, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.run(ctx, args)
}
