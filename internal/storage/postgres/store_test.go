package postgres

import (
	"context"
	"os"
	"testing"

	"gaugeScope/internal/model"
)

func TestStorePutRows(t *testing.T) {
	dsn := os.Getenv("GAUGESCOPE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("GAUGESCOPE_TEST_PG_DSN not set")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	commit := "test-" + t.Name()
	rows := []model.ReportRow{
		{Commit: commit, File: "BIPs/a.json", Index: 0, Function: "add_gauge", PoolID: "Custom", Symbol: "A", PoolAddress: "0x1", AFactor: "N/A", GaugeAddress: "0x2", Type: "2", Cap: "N/A", Style: "mainnet"},
		{Commit: commit, File: "BIPs/a.json", Index: 1, Function: "killGauge", PoolID: "Custom", Symbol: "B", PoolAddress: "0x3", AFactor: "N/A", GaugeAddress: "0x4", Type: "NA", Cap: "N/A", Style: "mainnet"},
	}
	// Writing twice must upsert, not duplicate.
	for i := 0; i < 2; i++ {
		if err := store.PutRows(ctx, rows); err != nil {
			t.Fatalf("put rows: %v", err)
		}
	}

	n, err := store.CountRows(ctx, commit)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), n)
	}
}
