package balancer

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const poolABIJSON = `[
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "totalSupply", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getPoolId", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"},
  {
    "inputs": [],
    "name": "getAmplificationParameter",
    "outputs": [
      {"internalType": "uint256", "name": "value", "type": "uint256"},
      {"internalType": "bool", "name": "isUpdating", "type": "bool"},
      {"internalType": "uint256", "name": "precision", "type": "uint256"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

// Zero-argument accessors exposed by the gauge family (root gauges, child
// gauges, streamers, single recipient gauges) and the contracts they point to.
const gaugeABIJSON = `[
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "lp_token", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getRecipient", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "reward_receiver", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getRelativeWeightCap", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getVotingEscrow", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "token", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getTotalBridgeCost", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getPolygonBridge", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getArbitrumBridge", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getGnosisBridge", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getOptimismBridge", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "implementation", "outputs": [{"type": "address"}], "stateMutability": "view", "type": "function"}
]`

const gaugeControllerABIJSON = `[
  {
    "inputs": [
      {"name": "addr", "type": "address"},
      {"name": "gauge_type", "type": "int128"}
    ],
    "name": "add_gauge",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"name": "addr", "type": "address"},
      {"name": "gauge_type", "type": "int128"},
      {"name": "weight", "type": "uint256"}
    ],
    "name": "add_gauge",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"name": "addr", "type": "address"},
      {"name": "weight", "type": "uint256"}
    ],
    "name": "change_gauge_weight",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"name": "type_id", "type": "int128"},
      {"name": "weight", "type": "uint256"}
    ],
    "name": "change_type_weight",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"name": "_name", "type": "string"}], "name": "add_type", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {
    "inputs": [
      {"name": "_name", "type": "string"},
      {"name": "weight", "type": "uint256"}
    ],
    "name": "add_type",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"name": "addr", "type": "address"}], "name": "checkpoint_gauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

// Admin methods called on gauges directly through the authorizer.
const gaugeAdminABIJSON = `[
  {"inputs": [], "name": "killGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "unkillGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "checkpoint", "outputs": [{"type": "bool"}], "stateMutability": "payable", "type": "function"},
  {
    "inputs": [{"name": "relativeWeightCap", "type": "uint256"}],
    "name": "setRelativeWeightCap",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

// Gauge adder entry points that register a gauge, v2 per-chain and v3 typed.
const gaugeAdderABIJSON = `[
  {
    "inputs": [
      {"name": "gauge", "type": "address"},
      {"name": "gaugeType", "type": "string"}
    ],
    "name": "addGauge",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"name": "gauge", "type": "address"}], "name": "addEthereumGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "rootGauge", "type": "address"}], "name": "addPolygonGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "rootGauge", "type": "address"}], "name": "addArbitrumGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "rootGauge", "type": "address"}], "name": "addOptimismGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "rootGauge", "type": "address"}], "name": "addGnosisGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "rootGauge", "type": "address"}], "name": "addZKSyncGauge", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

type lazyABI struct {
	raw    string
	once   sync.Once
	parsed abi.ABI
	err    error
}

func (l *lazyABI) get() (abi.ABI, error) {
	l.once.Do(func() {
		l.parsed, l.err = abi.JSON(strings.NewReader(l.raw))
	})
	return l.parsed, l.err
}

var (
	poolABI            = &lazyABI{raw: poolABIJSON}
	gaugeABI           = &lazyABI{raw: gaugeABIJSON}
	gaugeControllerABI = &lazyABI{raw: gaugeControllerABIJSON}
	gaugeAdminABI      = &lazyABI{raw: gaugeAdminABIJSON}
	gaugeAdderABI      = &lazyABI{raw: gaugeAdderABIJSON}
)

// PoolABI returns the parsed pool ABI.
func PoolABI() (abi.ABI, error) {
	return poolABI.get()
}

// GaugeABI returns the parsed gauge accessor ABI.
func GaugeABI() (abi.ABI, error) {
	return gaugeABI.get()
}

// GaugeControllerABI returns the parsed GaugeController ABI.
func GaugeControllerABI() (abi.ABI, error) {
	return gaugeControllerABI.get()
}

// GaugeAdminABI returns the parsed gauge admin ABI.
func GaugeAdminABI() (abi.ABI, error) {
	return gaugeAdminABI.get()
}

// GaugeAdderABI returns the parsed GaugeAdder ABI.
func GaugeAdderABI() (abi.ABI, error) {
	return gaugeAdderABI.get()
}
