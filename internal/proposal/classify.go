package proposal

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gaugeScope/internal/balancer"
	"gaugeScope/internal/model"
)

const (
	performAction = "performAction"

	// BadCallDataFunction is the function column of rows whose calldata
	// could not be decoded.
	BadCallDataFunction = "Bad Call Data"

	// killGaugeType is reported when the call carries no gauge type.
	killGaugeType = "NA"
)

// Kind is the outcome of classifying a transaction.
type Kind int

const (
	// Skip means the transaction is not a gauge change.
	Skip Kind = iota
	// Gauge means the transaction targets a gauge that should be resolved.
	Gauge
	// BadCallData means a passthrough carried undecodable calldata.
	BadCallData
)

// Classification is the decoded intent of one proposal transaction.
type Classification struct {
	Kind         Kind
	Command      string
	GaugeAddress string
	GaugeType    string
	RawData      string
	Reason       string
}

// Classifier recognizes gauge adder calls and authorizer passthroughs.
type Classifier struct {
	gaugeAdder      common.Address
	gaugeController common.Address
	controllerABI   abi.ABI
	adderABI        abi.ABI
	adminABI        abi.ABI
	logger          *zap.Logger
}

func NewClassifier(gaugeAdder, gaugeController common.Address, logger *zap.Logger) (*Classifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	controllerABI, err := balancer.GaugeControllerABI()
	if err != nil {
		return nil, fmt.Errorf("parse gauge controller abi: %w", err)
	}
	adderABI, err := balancer.GaugeAdderABI()
	if err != nil {
		return nil, fmt.Errorf("parse gauge adder abi: %w", err)
	}
	adminABI, err := balancer.GaugeAdminABI()
	if err != nil {
		return nil, fmt.Errorf("parse gauge admin abi: %w", err)
	}
	return &Classifier{
		gaugeAdder:      gaugeAdder,
		gaugeController: gaugeController,
		controllerABI:   controllerABI,
		adderABI:        adderABI,
		adminABI:        adminABI,
		logger:          logger,
	}, nil
}

// Classify decides what a transaction does to gauges.
func (c *Classifier) Classify(tx model.Transaction) Classification {
	if sameAddress(tx.To, c.gaugeAdder) {
		return c.classifyGaugeAdder(tx)
	}

	method := tx.MethodName()
	if method == "" {
		return skip("no ABI with name in payload")
	}
	if method != performAction {
		return skip("not an authorizer passthrough")
	}
	return c.classifyPassthrough(tx)
}

func (c *Classifier) classifyGaugeAdder(tx model.Transaction) Classification {
	gauge, ok := tx.Input("rootGauge")
	if !ok {
		gauge, ok = tx.Input("gauge")
	}
	if !ok {
		return skip("call to gauge adder without a gauge")
	}

	command := tx.MethodName()
	if command == "" {
		command = model.NotApplicable
	}
	return Classification{
		Kind:         Gauge,
		Command:      command,
		GaugeAddress: gauge,
		GaugeType:    model.NotApplicable,
	}
}

func (c *Classifier) classifyPassthrough(tx model.Transaction) Classification {
	target, ok := tx.Input("target")
	if !ok {
		return skip("passthrough without a target")
	}
	data, _ := tx.Input("data")

	// Calls on the controller and the adder name the gauge in their first
	// argument; anything else is treated as a call on the gauge itself.
	parsed, onGauge := c.adminABI, true
	switch {
	case sameAddress(target, c.gaugeController):
		parsed, onGauge = c.controllerABI, false
	case sameAddress(target, c.gaugeAdder):
		parsed, onGauge = c.adderABI, false
	}

	call, err := balancer.DecodeCall(parsed, data)
	if err != nil {
		if errors.Is(err, balancer.ErrUnknownSelector) && !sameAddress(target, c.gaugeController) {
			c.logger.Info("not a gauge call", zap.String("target", target), zap.Error(err))
			return skip("not a gauge call")
		}
		c.logger.Error("bad call data", zap.String("target", target), zap.String("data", data), zap.Error(err))
		return Classification{
			Kind:    BadCallData,
			Command: BadCallDataFunction,
			RawData: data,
			Reason:  err.Error(),
		}
	}

	out := Classification{
		Kind:         Gauge,
		Command:      call.Method,
		GaugeAddress: target,
		GaugeType:    killGaugeType,
	}
	var gauge common.Address
	if len(call.Args) > 0 {
		gauge, err = balancer.AsAddress(call.Args[0])
	}
	if len(call.Args) == 0 || err != nil {
		if !onGauge {
			return skip(fmt.Sprintf("%s does not name a gauge", call.Method))
		}
		return out
	}
	out.GaugeAddress = gauge.Hex()
	if len(call.Args) > 1 {
		out.GaugeType = balancer.FormatArg(call.Args[1])
	}
	return out
}

func skip(reason string) Classification {
	return Classification{Kind: Skip, Reason: reason}
}

func sameAddress(raw string, addr common.Address) bool {
	if !common.IsHexAddress(raw) {
		return false
	}
	return common.HexToAddress(raw) == addr
}
