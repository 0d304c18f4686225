package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gaugeScope/internal/model"
)

// RowLog appends audit rows to a JSON lines file, one row per line. Rows of a
// batch land together so a failed run never leaves half a proposal behind.
type RowLog struct {
	path string
	mu   sync.Mutex
}

func NewRowLog(path string) *RowLog {
	return &RowLog{path: path}
}

// PutRows encodes the whole batch before touching the file.
func (l *RowLog) PutRows(_ context.Context, rows []model.ReportRow) error {
	if len(rows) == 0 {
		return nil
	}

	var buf []byte
	for i, row := range rows {
		line, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %d of %s: %w", i, row.File, err)
		}
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := EnsureDir(l.path); err != nil {
		return err
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open row log: %w", err)
	}
	if _, err := file.Write(buf); err != nil {
		file.Close()
		return fmt.Errorf("append %d rows: %w", len(rows), err)
	}
	return file.Close()
}
