package proposal

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaugeScope/internal/balancer"
	"gaugeScope/internal/model"
)

var (
	testAdder      = common.HexToAddress("0x5efBb12F01f27E1A1A3B11bA9e8Fe5F23BeA31E3")
	testController = common.HexToAddress("0xC128468b7Ce63eA702C1f104D55A2566b13D3ABD")
	testAuthorizer = "0x8F42aDBbA1B16EaAE3BB5754915E0D06059aDd75"
	testGauge      = common.HexToAddress("0x1234567890123456789012345678901234567890")
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(testAdder, testController, nil)
	require.NoError(t, err)
	return c
}

func passthrough(target, data string) model.Transaction {
	return model.Transaction{
		To:             testAuthorizer,
		ContractMethod: &model.ContractMethod{Name: "performAction"},
		ContractInputsValues: map[string]any{
			"target": target,
			"data":   data,
		},
	}
}

func TestClassifyGaugeAdder(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify(model.Transaction{
		To:                   testAdder.Hex(),
		ContractMethod:       &model.ContractMethod{Name: "addEthereumGauge"},
		ContractInputsValues: map[string]any{"gauge": "0xABC"},
	})
	assert.Equal(t, Classification{
		Kind:         Gauge,
		Command:      "addEthereumGauge",
		GaugeAddress: "0xABC",
		GaugeType:    "N/A",
	}, got)

	// Address comparison ignores checksum casing.
	got = c.Classify(model.Transaction{
		To:                   "0x5efbb12f01f27e1a1a3b11ba9e8fe5f23bea31e3",
		ContractMethod:       &model.ContractMethod{Name: "addArbitrumGauge"},
		ContractInputsValues: map[string]any{"rootGauge": "0xdef"},
	})
	assert.Equal(t, Gauge, got.Kind)
	assert.Equal(t, "0xdef", got.GaugeAddress)
}

func TestClassifyGaugeAdderWithoutGauge(t *testing.T) {
	c := newTestClassifier(t)
	got := c.Classify(model.Transaction{
		To:                   testAdder.Hex(),
		ContractMethod:       &model.ContractMethod{Name: "addGaugeType"},
		ContractInputsValues: map[string]any{"gaugeType": "Ethereum"},
	})
	assert.Equal(t, Skip, got.Kind)
}

func TestClassifySkipsNonPassthrough(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify(model.Transaction{To: testAuthorizer})
	assert.Equal(t, Skip, got.Kind)
	assert.Equal(t, "no ABI with name in payload", got.Reason)

	got = c.Classify(model.Transaction{
		To:             testAuthorizer,
		ContractMethod: &model.ContractMethod{Name: "grantRoles"},
	})
	assert.Equal(t, Skip, got.Kind)
}

func TestClassifyControllerAddGauge(t *testing.T) {
	c := newTestClassifier(t)
	parsed, err := balancer.GaugeControllerABI()
	require.NoError(t, err)

	data, err := parsed.Pack("add_gauge", testGauge, big.NewInt(2))
	require.NoError(t, err)

	got := c.Classify(passthrough(testController.Hex(), hexutil.Encode(data)))
	assert.Equal(t, Classification{
		Kind:         Gauge,
		Command:      "add_gauge",
		GaugeAddress: testGauge.Hex(),
		GaugeType:    "2",
	}, got)
}

func TestClassifyGaugeKill(t *testing.T) {
	c := newTestClassifier(t)
	parsed, err := balancer.GaugeAdminABI()
	require.NoError(t, err)

	data, err := parsed.Pack("killGauge")
	require.NoError(t, err)

	target := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	got := c.Classify(passthrough(target, hexutil.Encode(data)))
	assert.Equal(t, Gauge, got.Kind)
	assert.Equal(t, "killGauge", got.Command)
	assert.Equal(t, target, got.GaugeAddress)
	assert.Equal(t, "NA", got.GaugeType)
}

func TestClassifySetRelativeWeightCap(t *testing.T) {
	c := newTestClassifier(t)
	parsed, err := balancer.GaugeAdminABI()
	require.NoError(t, err)

	data, err := parsed.Pack("setRelativeWeightCap", big.NewInt(2e16))
	require.NoError(t, err)

	target := testGauge.Hex()
	got := c.Classify(passthrough(target, hexutil.Encode(data)))
	assert.Equal(t, "setRelativeWeightCap", got.Command)
	assert.Equal(t, target, got.GaugeAddress)
	assert.Equal(t, "NA", got.GaugeType)
}

func TestClassifyBadCallData(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify(passthrough(testController.Hex(), "0xdeadbeef"))
	assert.Equal(t, BadCallData, got.Kind)
	assert.Equal(t, BadCallDataFunction, got.Command)
	assert.Equal(t, "0xdeadbeef", got.RawData)
	assert.NotEmpty(t, got.Reason)
}

func TestClassifyAdderPassthrough(t *testing.T) {
	c := newTestClassifier(t)
	parsed, err := balancer.GaugeAdderABI()
	require.NoError(t, err)

	data, err := parsed.Pack("addGauge", testGauge, "Ethereum")
	require.NoError(t, err)

	got := c.Classify(passthrough(testAdder.Hex(), hexutil.Encode(data)))
	assert.Equal(t, Classification{
		Kind:         Gauge,
		Command:      "addGauge",
		GaugeAddress: testGauge.Hex(),
		GaugeType:    "Ethereum",
	}, got)

	data, err = parsed.Pack("addPolygonGauge", testGauge)
	require.NoError(t, err)
	got = c.Classify(passthrough(testAdder.Hex(), hexutil.Encode(data)))
	assert.Equal(t, Gauge, got.Kind)
	assert.Equal(t, "addPolygonGauge", got.Command)
	assert.Equal(t, testGauge.Hex(), got.GaugeAddress)
	assert.Equal(t, "NA", got.GaugeType)
}

func TestClassifyUnknownSelectorSkips(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify(passthrough(testAdder.Hex(), "0xdeadbeef"))
	assert.Equal(t, Skip, got.Kind)
	assert.Equal(t, "not a gauge call", got.Reason)

	got = c.Classify(passthrough("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", "0xdeadbeef"))
	assert.Equal(t, Skip, got.Kind)
	assert.Equal(t, "not a gauge call", got.Reason)
}

func TestClassifyBadCallDataOffController(t *testing.T) {
	c := newTestClassifier(t)
	target := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	got := c.Classify(passthrough(target, "0xzz"))
	assert.Equal(t, BadCallData, got.Kind)

	got = c.Classify(passthrough(target, "0xdead"))
	assert.Equal(t, BadCallData, got.Kind)
	assert.Equal(t, "0xdead", got.RawData)
}
