package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaugeScope/internal/model"
)

func readRows(t *testing.T, path string) []model.ReportRow {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var rows []model.ReportRow
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var row model.ReportRow
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &row))
		rows = append(rows, row)
	}
	require.NoError(t, scanner.Err())
	return rows
}

func TestRowLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rows.jsonl")
	log := NewRowLog(path)
	ctx := context.Background()

	first := []model.ReportRow{
		{File: "BIPs/a.json", Index: 0, Function: "add_gauge", Style: "mainnet"},
		{File: "BIPs/a.json", Index: 1, Function: "killGauge", Style: "mainnet"},
	}
	second := []model.ReportRow{{File: "BIPs/b.json", Index: 0, Function: "killGauge", Style: "L0 sidechain"}}

	require.NoError(t, log.PutRows(ctx, first))
	require.NoError(t, log.PutRows(ctx, nil))
	require.NoError(t, log.PutRows(ctx, second))

	got := readRows(t, path)
	require.Len(t, got, 3)
	assert.Equal(t, "add_gauge", got[0].Function)
	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, "L0 sidechain", got[2].Style)
}

func TestRowLogEmptyBatchCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rows.jsonl")
	require.NoError(t, NewRowLog(path).PutRows(context.Background(), nil))

	_, err := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "report.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDirBareName(t *testing.T) {
	assert.NoError(t, EnsureDir("rows.jsonl"))
}
