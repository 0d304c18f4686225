package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"gaugeScope/internal/model"
	"gaugeScope/internal/storage"
)

const reportSuffix = ".report.txt"

// Report is the audit of one proposal file.
type Report struct {
	File   string
	Commit string
	Rows   []model.ReportRow
}

// Block renders the report as a comment block: filename, commit and a fenced table.
func (r Report) Block() (string, error) {
	table, err := RenderTable(r.Rows)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(r.File)
	sb.WriteString("\nCOMMIT: ")
	sb.WriteString(r.Commit)
	sb.WriteString("\n```\n")
	sb.WriteString(table)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}

// Path returns the per-file report path: the input path with its extension
// replaced by .report.txt.
func Path(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + reportSuffix
}

// Writer writes the combined comment output and one report file per proposal.
type Writer struct {
	Root     string
	Combined string
	Logger   *zap.Logger
}

// Write renders every non-empty report. The combined file is always written,
// even when there is nothing to report.
func (w Writer) Write(reports []Report) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var combined strings.Builder
	blocks := make(map[string]string, len(reports))
	order := make([]string, 0, len(reports))
	for _, rep := range reports {
		if len(rep.Rows) == 0 {
			logger.Info("no gauge changes found, skipping", zap.String("file", rep.File))
			continue
		}
		block, err := rep.Block()
		if err != nil {
			return fmt.Errorf("render %s: %w", rep.File, err)
		}
		combined.WriteString(block)
		if _, seen := blocks[rep.File]; !seen {
			order = append(order, rep.File)
		}
		blocks[rep.File] = block
	}

	if err := writeFile(w.Combined, combined.String()); err != nil {
		return err
	}
	logger.Info("combined report written", zap.String("path", w.Combined), zap.Int("reports", len(order)))

	for _, file := range order {
		path := filepath.Join(w.Root, Path(file))
		if err := writeFile(path, blocks[file]); err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", path))
	}
	return nil
}

func writeFile(path, content string) error {
	return storage.WriteFileAtomic(path, []byte(content))
}
