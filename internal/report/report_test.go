package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaugeScope/internal/model"
)

func sampleRow() model.ReportRow {
	return model.ReportRow{
		Function:     "addEthereumGauge",
		PoolID:       "0x1e19cf2d73a72ef1332c882f20534b6519be02760002000000000000000000aa",
		Symbol:       "B-80BAL-20WETH",
		PoolAddress:  "0x5c6Ee304399DBdB9C8Ef030aB642B10820DB8F56",
		AFactor:      "N/A",
		GaugeAddress: "0xabc",
		Type:         "N/A",
		Cap:          "2.0%",
		Style:        "mainnet",
	}
}

func TestRenderTable(t *testing.T) {
	table, err := RenderTable([]model.ReportRow{sampleRow()})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(table, "+"), "table should use ascii borders:\n%s", table)
	assert.False(t, strings.HasSuffix(table, "\n"))

	header := strings.Split(table, "\n")[1]
	last := -1
	for _, col := range model.TableColumns {
		idx := strings.Index(header, col)
		require.GreaterOrEqual(t, idx, 0, "missing column %s in %q", col, header)
		assert.Greater(t, idx, last, "column %s out of order", col)
		last = idx
	}
	for _, cell := range sampleRow().TableValues() {
		assert.Contains(t, table, cell)
	}
}

func TestBlock(t *testing.T) {
	block, err := Report{File: "BIPs/2024-W1/BIP-500.json", Commit: "deadbeef", Rows: []model.ReportRow{sampleRow()}}.Block()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(block, "BIPs/2024-W1/BIP-500.json\nCOMMIT: deadbeef\n```\n+"))
	assert.True(t, strings.HasSuffix(block, "+\n```\n"))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "BIPs/2024-W1/BIP-500.report.txt", Path("BIPs/2024-W1/BIP-500.json"))
	assert.Equal(t, "a/b.c.report.txt", Path("a/b.c.json"))
}

func TestWriterSkipsEmptyReports(t *testing.T) {
	root := t.TempDir()
	combined := filepath.Join(root, "output.txt")

	w := Writer{Root: root, Combined: combined}
	err := w.Write([]Report{
		{File: "BIPs/a.json", Commit: "c1", Rows: []model.ReportRow{sampleRow()}},
		{File: "BIPs/empty.json", Commit: "c1"},
		{File: "BIPs/b.json", Commit: "c1", Rows: []model.ReportRow{sampleRow()}},
	})
	require.NoError(t, err)

	out, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "COMMIT: c1"))
	assert.Less(t, strings.Index(string(out), "BIPs/a.json"), strings.Index(string(out), "BIPs/b.json"))

	for _, name := range []string{"a", "b"} {
		data, err := os.ReadFile(filepath.Join(root, "BIPs", name+".report.txt"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "BIPs/"+name+".json\n"))
	}
	_, err = os.Stat(filepath.Join(root, "BIPs", "empty.report.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriterNoReports(t *testing.T) {
	root := t.TempDir()
	combined := filepath.Join(root, "output.txt")
	require.NoError(t, Writer{Root: root, Combined: combined}.Write(nil))

	out, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Empty(t, out)
}
