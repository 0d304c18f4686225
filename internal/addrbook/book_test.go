package addrbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	b := Default()

	addr, err := b.SearchUnique(GaugeControllerKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xC128468b7Ce63eA702C1f104D55A2566b13D3ABD"), addr)

	addr, ok := b.Lookup(GaugeAdderKey)
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress("0x5efBb12F01f27E1A1A3B11bA9e8Fe5F23BeA31E3"), addr)
}

func TestLoadFlattensNested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mainnet.json")
	doc := `{
		"20230109-gauge-adder-v3/GaugeAdder": "0x0000000000000000000000000000000000000001",
		"multisigs": {"dao": "0x0000000000000000000000000000000000000002"},
		"notes": 7
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())

	addr, ok := b.Lookup(GaugeAdderKey)
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress("0x01"), addr)

	addr, ok = b.Lookup("multisigs/dao")
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress("0x02"), addr)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"x": "not-an-address"}`), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	b, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestSearchUniqueAmbiguity(t *testing.T) {
	b := Default()

	_, err := b.SearchUnique("gauge")
	assert.ErrorContains(t, err, "2 address book entries")

	_, err = b.SearchUnique("vault")
	assert.ErrorContains(t, err, "no address book entry")
}
