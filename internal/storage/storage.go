package storage

import (
	"context"

	"gaugeScope/internal/model"
)

// RowSink receives finished audit rows.
type RowSink interface {
	PutRows(ctx context.Context, rows []model.ReportRow) error
}
