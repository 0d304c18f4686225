package audit

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gaugeScope/internal/gauge"
	"gaugeScope/internal/model"
	"gaugeScope/internal/proposal"
	"gaugeScope/internal/report"
	"gaugeScope/internal/storage"
)

// Classifier decides what a proposal transaction does to gauges.
type Classifier interface {
	Classify(tx model.Transaction) proposal.Classification
}

// Resolver follows a gauge to its pool.
type Resolver interface {
	Resolve(ctx context.Context, addr common.Address) (gauge.Result, error)
}

// Config holds runtime settings for the audit.
type Config struct {
	Root   string
	Commit string
}

// Runner audits proposal files one transaction at a time.
type Runner struct {
	cfg        Config
	classifier Classifier
	resolver   Resolver
	sinks      []storage.RowSink
	logger     *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg Config, classifier Classifier, resolver Resolver, sinks []storage.RowSink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		classifier: classifier,
		resolver:   resolver,
		sinks:      sinks,
		logger:     logger,
	}
}

// Run audits files in order. Files that are not proposal payloads are
// skipped; everything else yields one report, possibly with no rows.
func (r *Runner) Run(ctx context.Context, files []string) ([]report.Report, error) {
	if r.classifier == nil {
		return nil, fmt.Errorf("classifier is nil")
	}
	if r.resolver == nil {
		return nil, fmt.Errorf("resolver is nil")
	}

	reports := make([]report.Report, 0, len(files))
	var all []model.ReportRow
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.logger.Info("processing", zap.String("file", file))
		payload, ok := proposal.ParseFile(r.cfg.Root, file, r.logger)
		if !ok {
			continue
		}

		rows, err := r.auditPayload(ctx, file, payload)
		if err != nil {
			return nil, fmt.Errorf("audit %s: %w", file, err)
		}
		reports = append(reports, report.Report{File: file, Commit: r.cfg.Commit, Rows: rows})
		all = append(all, rows...)
	}

	for _, sink := range r.sinks {
		if err := sink.PutRows(ctx, all); err != nil {
			return nil, fmt.Errorf("store rows: %w", err)
		}
	}

	r.logger.Info("audit complete", zap.Int("files", len(files)), zap.Int("reports", len(reports)), zap.Int("rows", len(all)))
	return reports, nil
}

func (r *Runner) auditPayload(ctx context.Context, file string, payload *model.Payload) ([]model.ReportRow, error) {
	rows := make([]model.ReportRow, 0, len(payload.Transactions))
	for i, tx := range payload.Transactions {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cls := r.classifier.Classify(tx)
		var row model.ReportRow
		switch cls.Kind {
		case proposal.Skip:
			r.logger.Debug("skip transaction", zap.String("file", file), zap.Int("tx", i), zap.String("reason", cls.Reason))
			continue
		case proposal.BadCallData:
			row = badCallDataRow(cls)
		default:
			var err error
			if row, err = r.resolveRow(ctx, cls); err != nil {
				return nil, err
			}
		}

		row.File = file
		row.Commit = r.cfg.Commit
		row.Index = len(rows)
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *Runner) resolveRow(ctx context.Context, cls proposal.Classification) (model.ReportRow, error) {
	if !common.IsHexAddress(cls.GaugeAddress) {
		err := fmt.Errorf("invalid gauge address %q", cls.GaugeAddress)
		r.logger.Warn("gauge not resolvable", zap.String("gauge", cls.GaugeAddress), zap.Error(err))
		return resolveErrorRow(cls, gauge.Result{}, err), nil
	}

	res, err := r.resolver.Resolve(ctx, common.HexToAddress(cls.GaugeAddress))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.ReportRow{}, ctxErr
		}
		r.logger.Warn("gauge not resolvable", zap.String("gauge", cls.GaugeAddress), zap.Error(err))
		return resolveErrorRow(cls, res, err), nil
	}

	r.logger.Info("processed",
		zap.String("pool", res.Pool.Name),
		zap.String("gauge", cls.GaugeAddress),
		zap.String("style", string(res.Gauge.Style)),
		zap.String("chain", res.Gauge.Chain),
	)
	return gaugeRow(cls, res), nil
}
