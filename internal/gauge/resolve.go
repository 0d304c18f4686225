package gauge

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gaugeScope/internal/balancer"
	"gaugeScope/internal/chain"
	"gaugeScope/internal/model"
)

// Networks switches between the primary chain and side chains.
type Networks interface {
	Primary() string
	Caller(ctx context.Context, network string) (chain.Caller, error)
	WithNetwork(ctx context.Context, network string, fn func(chain.Caller) error) error
}

// BridgeSelector maps a root gauge bridge accessor to the side chain it serves.
type BridgeSelector struct {
	Signature string
	Chain     string
}

// BridgeSelectors are checked in order; the first match wins.
var BridgeSelectors = []BridgeSelector{
	{Signature: "getTotalBridgeCost()", Chain: "arbitrum"},
	{Signature: "getPolygonBridge()", Chain: "polygon"},
	{Signature: "getArbitrumBridge()", Chain: "arbitrum"},
	{Signature: "getGnosisBridge()", Chain: "gnosis"},
	{Signature: "getOptimismBridge()", Chain: "optimism"},
}

// ErrNoCode reports a gauge address with no deployed contract.
var ErrNoCode = errors.New("no contract code")

// SideChainNetwork is the network name a bridge chain resolves on.
func SideChainNetwork(l2 string) string {
	return l2 + "-main"
}

// Result is a resolved gauge together with the pool it rewards.
type Result struct {
	Gauge model.GaugeDescriptor
	Pool  model.PoolDescriptor
}

// variant is one gauge layout with its own resolution procedure.
type variant interface {
	resolve(ctx context.Context, mainnet chain.Caller, gauge common.Address) (Result, error)
}

// Resolver follows a gauge to its pool, on whichever chain the pool lives.
type Resolver struct {
	networks Networks
	detector Detector
	pools    *balancer.PoolCache
	logger   *zap.Logger
	abi      abi.ABI
}

func NewResolver(networks Networks, detector Detector, logger *zap.Logger) (*Resolver, error) {
	if networks == nil {
		return nil, fmt.Errorf("networks is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if detector == nil {
		detector = NewCodeDetector(logger)
	}
	parsed, err := balancer.GaugeABI()
	if err != nil {
		return nil, fmt.Errorf("parse gauge abi: %w", err)
	}
	return &Resolver{
		networks: networks,
		detector: detector,
		pools:    balancer.NewPoolCache(),
		logger:   logger,
		abi:      parsed,
	}, nil
}

// Resolve determines the gauge style by probing the contract and runs that
// style's resolution. On error the returned Result still carries whatever
// was learned (address, chain, style).
func (r *Resolver) Resolve(ctx context.Context, gauge common.Address) (Result, error) {
	partial := Result{
		Gauge: model.GaugeDescriptor{
			Address: gauge.Hex(),
			Chain:   r.networks.Primary(),
			Symbol:  model.NotApplicable,
			Cap:     model.NotApplicable,
		},
		Pool: model.UnavailablePool(),
	}

	mainnet, err := r.networks.Caller(ctx, r.networks.Primary())
	if err != nil {
		return partial, err
	}

	v, err := r.detect(ctx, mainnet, gauge)
	if err != nil {
		return partial, fmt.Errorf("detect gauge %s: %w", gauge.Hex(), err)
	}

	res, err := v.resolve(ctx, mainnet, gauge)
	res.Gauge.Address = gauge.Hex()
	if res.Gauge.Cap == "" {
		res.Gauge.Cap = model.NotApplicable
	}
	if err != nil {
		return res, err
	}

	res.Gauge.Cap = r.relativeWeightCap(ctx, mainnet, gauge)
	return res, nil
}

func (r *Resolver) detect(ctx context.Context, mainnet chain.Caller, gauge common.Address) (variant, error) {
	deployed, err := r.detector.HasCode(ctx, mainnet, gauge)
	if err != nil {
		return nil, err
	}
	if !deployed {
		return nil, fmt.Errorf("%w at %s", ErrNoCode, gauge.Hex())
	}

	for _, bridge := range BridgeSelectors {
		ok, err := r.detector.HasFunction(ctx, mainnet, gauge, bridge.Signature)
		if err != nil {
			return nil, err
		}
		if ok {
			return rootGauge{r: r, l2: bridge.Chain}, nil
		}
	}

	hasName, err := r.detector.HasFunction(ctx, mainnet, gauge, "name()")
	if err != nil {
		return nil, err
	}
	if !hasName {
		return singleRecipientGauge{r: r}, nil
	}
	return mainnetGauge{r: r}, nil
}

func (r *Resolver) relativeWeightCap(ctx context.Context, mainnet chain.Caller, gauge common.Address) string {
	ok, err := r.detector.HasFunction(ctx, mainnet, gauge, "getRelativeWeightCap()")
	if err != nil || !ok {
		return model.NotApplicable
	}
	raw, err := balancer.CallBigInt(ctx, mainnet, gauge, r.abi, "getRelativeWeightCap")
	if err != nil {
		r.logger.Warn("relative weight cap read failed", zap.String("gauge", gauge.Hex()), zap.Error(err))
		return model.NotApplicable
	}
	return FormatCap(raw)
}

// pool loads pool metadata once per network and address.
func (r *Resolver) pool(ctx context.Context, network string, caller chain.Caller, addr common.Address) (model.PoolDescriptor, error) {
	key := balancer.PoolKey{Network: network, Address: addr}
	if pool, ok := r.pools.Get(key); ok {
		return pool, nil
	}
	pool, err := balancer.FetchPool(ctx, caller, addr, r.logger)
	if err != nil {
		return model.PoolDescriptor{}, err
	}
	r.pools.Set(key, pool)
	return pool, nil
}

// poolBehind reads lp_token and symbol from a gauge-like contract and loads the pool.
func (r *Resolver) poolBehind(ctx context.Context, network string, caller chain.Caller, gauge common.Address) (model.PoolDescriptor, string, error) {
	lpToken, err := balancer.CallAddress(ctx, caller, gauge, r.abi, "lp_token")
	if err != nil {
		return model.PoolDescriptor{}, "", err
	}
	pool, err := r.pool(ctx, network, caller, lpToken)
	if err != nil {
		return model.PoolDescriptor{}, "", fmt.Errorf("pool %s: %w", lpToken.Hex(), err)
	}
	symbol, err := balancer.CallString(ctx, caller, gauge, r.abi, "symbol")
	if err != nil {
		return pool, "", err
	}
	return pool, symbol, nil
}

// mainnetGauge is a gauge staking the pool token on the primary chain.
type mainnetGauge struct {
	r *Resolver
}

func (v mainnetGauge) resolve(ctx context.Context, mainnet chain.Caller, gauge common.Address) (Result, error) {
	res := Result{
		Gauge: model.GaugeDescriptor{Chain: v.r.networks.Primary(), Style: model.StyleMainnet, Symbol: model.NotApplicable},
		Pool:  model.UnavailablePool(),
	}
	pool, symbol, err := v.r.poolBehind(ctx, v.r.networks.Primary(), mainnet, gauge)
	if err != nil {
		return res, err
	}
	res.Pool = pool
	res.Gauge.Symbol = symbol
	return res, nil
}

// singleRecipientGauge streams emissions to one recipient, usually a
// voting escrow; its pool is the escrowed token.
type singleRecipientGauge struct {
	r *Resolver
}

func (v singleRecipientGauge) resolve(ctx context.Context, mainnet chain.Caller, gauge common.Address) (Result, error) {
	res := Result{
		Gauge: model.GaugeDescriptor{Chain: v.r.networks.Primary(), Style: model.StyleSingleRecipient, Symbol: model.NotApplicable},
		Pool:  model.UnavailablePool(),
	}

	pool, err := v.follow(ctx, mainnet, gauge)
	if err != nil {
		v.r.logger.Warn("single recipient gauge not resolvable",
			zap.String("gauge", gauge.Hex()),
			zap.Error(err),
		)
		return res, nil
	}
	res.Pool = pool
	return res, nil
}

func (v singleRecipientGauge) follow(ctx context.Context, mainnet chain.Caller, gauge common.Address) (model.PoolDescriptor, error) {
	recipient, err := balancer.CallAddress(ctx, mainnet, gauge, v.r.abi, "getRecipient")
	if err != nil {
		return model.PoolDescriptor{}, err
	}
	escrow, err := balancer.CallAddress(ctx, mainnet, recipient, v.r.abi, "getVotingEscrow")
	if err != nil {
		return model.PoolDescriptor{}, err
	}
	token, err := balancer.CallAddress(ctx, mainnet, escrow, v.r.abi, "token")
	if err != nil {
		return model.PoolDescriptor{}, err
	}
	return v.r.pool(ctx, v.r.networks.Primary(), mainnet, token)
}

// rootGauge bridges emissions to a recipient on a side chain. The recipient
// is either a legacy ChildChainStreamer (it exposes reward_receiver) or the
// child gauge itself.
type rootGauge struct {
	r  *Resolver
	l2 string
}

func (v rootGauge) resolve(ctx context.Context, mainnet chain.Caller, gauge common.Address) (Result, error) {
	network := SideChainNetwork(v.l2)
	res := Result{
		Gauge: model.GaugeDescriptor{Chain: network, Symbol: model.NotApplicable},
		Pool:  model.UnavailablePool(),
	}

	recipient, err := balancer.CallAddress(ctx, mainnet, gauge, v.r.abi, "getRecipient")
	if err != nil {
		return res, err
	}

	err = v.r.networks.WithNetwork(ctx, network, func(l2 chain.Caller) error {
		streamer, err := v.r.detector.HasFunction(ctx, l2, recipient, "reward_receiver()")
		if err != nil {
			return err
		}

		child := recipient
		res.Gauge.Style = model.StyleL0Sidechain
		if streamer {
			res.Gauge.Style = model.StyleChildChainStreamer
			if child, err = balancer.CallAddress(ctx, l2, recipient, v.r.abi, "reward_receiver"); err != nil {
				return err
			}
		}

		pool, symbol, err := v.r.poolBehind(ctx, network, l2, child)
		if err != nil {
			return err
		}
		res.Pool = pool
		res.Gauge.Symbol = symbol
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("resolve on %s: %w", network, err)
	}
	return res, nil
}
