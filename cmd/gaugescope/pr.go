package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gaugeScope/internal/changeset"
	"gaugeScope/internal/config"
)

func runPullRequest(cmd *cobra.Command, _ []string) error {
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

	pr, err := config.LoadPRContext(ctx, nil)
	if err != nil {
		return err
	}

	fetcher := changeset.NewFetcher(changeset.NewClient(ctx, pr.Token),
		changeset.WithAttempts(cfg.GithubRetries),
		changeset.WithLogger(logger),
	)
	names, err := fetcher.ChangedFiles(ctx, pr.Repository, pr.PRNumber)
	if err != nil {
		return err
	}
	files := changeset.FilterProposalFiles(names, cfg.ProposalDir)

	logger.Info("audit start",
		zap.String("repo", pr.Repository),
		zap.Int("pr", pr.PRNumber),
		zap.String("commit", pr.CommitSHA),
		zap.Int("changed_files", len(names)),
		zap.Int("proposal_files", len(files)),
	)

	p, err := newPipeline(ctx, cfg, pr.CommitSHA, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.run(ctx, files)
}
