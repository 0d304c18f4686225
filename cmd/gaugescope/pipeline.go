package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gaugeScope/internal/addrbook"
	"gaugeScope/internal/audit"
	"gaugeScope/internal/chain"
	"gaugeScope/internal/config"
	"gaugeScope/internal/gauge"
	"gaugeScope/internal/proposal"
	"gaugeScope/internal/report"
	"gaugeScope/internal/storage"
	"gaugeScope/internal/storage/postgres"
)

// pipeline owns every resource an audit run needs.
type pipeline struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *chain.Registry
	runner   *audit.Runner
	closers  []func()
}

func (p *pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}

func newPipeline(ctx context.Context, cfg config.Config, commit string, logger *zap.Logger) (*pipeline, error) {
	if cfg.RPC[chain.Mainnet] == "" {
		return nil, fmt.Errorf("mainnet rpc url is required")
	}

	book, err := addrbook.Load(cfg.AddressBook)
	if err != nil {
		return nil, err
	}
	controller, err := lookupAddress(book, cfg.GaugeController, addrbook.GaugeControllerKey)
	if err != nil {
		return nil, fmt.Errorf("gauge controller: %w", err)
	}
	adder, err := lookupAddress(book, cfg.GaugeAdder, addrbook.GaugeAdderKey)
	if err != nil {
		return nil, fmt.Errorf("gauge adder: %w", err)
	}

	p := &pipeline{cfg: cfg, logger: logger}
	p.registry = chain.NewRegistry(chain.Mainnet, cfg.RPC,
		chain.WithLogger(logger),
		chain.WithCallTimeout(cfg.RPCTimeout),
	)
	p.closers = append(p.closers, p.registry.Close)

	resolver, err := gauge.NewResolver(p.registry, gauge.NewCodeDetector(logger), logger)
	if err != nil {
		p.Close()
		return nil, err
	}
	classifier, err := proposal.NewClassifier(adder, controller, logger)
	if err != nil {
		p.Close()
		return nil, err
	}

	var sinks []storage.RowSink
	if cfg.RowsOut != "" {
		sinks = append(sinks, storage.NewRowLog(cfg.RowsOut))
	}
	if cfg.PostgresDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		p.closers = append(p.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			p.Close()
			return nil, err
		}
		sinks = append(sinks, store)
	}

	p.runner = audit.NewRunner(audit.Config{Root: cfg.Root, Commit: commit}, classifier, resolver, sinks, logger)

	logger.Info("pipeline ready",
		zap.Strings("networks", p.registry.Networks()),
		zap.String("gauge_controller", controller.Hex()),
		zap.String("gauge_adder", adder.Hex()),
		zap.String("root", cfg.Root),
		zap.String("output", cfg.Output),
		zap.String("rows_out", cfg.RowsOut),
		zap.String("pg_dsn", redactDSN(cfg.PostgresDSN)),
		zap.Duration("rpc_timeout", cfg.RPCTimeout),
	)
	return p, nil
}

// run audits files and writes the combined and per-file reports.
func (p *pipeline) run(ctx context.Context, files []string) error {
	start := time.Now()
	reports, err := p.runner.Run(ctx, files)
	if err != nil {
		return err
	}

	writer := report.Writer{
		Root:     p.cfg.Root,
		Combined: combinedPath(p.cfg.Root, p.cfg.Output),
		Logger:   p.logger,
	}
	if err := writer.Write(reports); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	p.logger.Info("reports written", zap.Int("reports", len(reports)), zap.String("output", writer.Combined), elapsed(start))
	return nil
}

func lookupAddress(book *addrbook.Book, explicit, key string) (common.Address, error) {
	if explicit != "" {
		if !common.IsHexAddress(explicit) {
			return common.Address{}, fmt.Errorf("invalid address: %s", explicit)
		}
		return common.HexToAddress(explicit), nil
	}
	return book.SearchUnique(key)
}

// combinedPath places a relative output path under the checkout root.
func combinedPath(root, output string) string {
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(root, output)
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
