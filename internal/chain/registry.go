package chain

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Mainnet is the primary network name.
const Mainnet = "mainnet"

// ExpectedChainIDs maps network names to the chain they must serve.
var ExpectedChainIDs = map[string]uint64{
	Mainnet:         1,
	"arbitrum-main": 42161,
	"polygon-main":  137,
	"gnosis-main":   100,
	"optimism-main": 10,
}

type chainIDer interface {
	GetChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Caller for a named network.
type Dialer func(ctx context.Context, network, rpcURL string) (Caller, error)

// Registry holds one lazily dialled client per named network and tracks which
// network is currently active.
type Registry struct {
	primary string
	urls    map[string]string
	dial    Dialer
	logger  *zap.Logger

	mu      sync.Mutex
	clients map[string]Caller
	active  string
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithDialer replaces the RPC dialer.
func WithDialer(dial Dialer) RegistryOption {
	return func(r *Registry) {
		r.dial = dial
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCallTimeout bounds every RPC call made by dialled clients.
func WithCallTimeout(timeout time.Duration) RegistryOption {
	return func(r *Registry) {
		r.dial = func(ctx context.Context, _ string, rpcURL string) (Caller, error) {
			return NewClient(ctx, rpcURL, timeout)
		}
	}
}

// NewRegistry builds a registry whose active network starts at primary.
func NewRegistry(primary string, urls map[string]string, opts ...RegistryOption) *Registry {
	copied := make(map[string]string, len(urls))
	for name, url := range urls {
		copied[name] = url
	}

	r := &Registry{
		primary: primary,
		urls:    copied,
		logger:  zap.NewNop(),
		clients: make(map[string]Caller),
		active:  primary,
		dial: func(ctx context.Context, _ string, rpcURL string) (Caller, error) {
			return NewClient(ctx, rpcURL, 0)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Primary returns the primary network name.
func (r *Registry) Primary() string {
	return r.primary
}

// Active returns the currently active network name.
func (r *Registry) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Networks lists the configured network names.
func (r *Registry) Networks() []string {
	names := make([]string, 0, len(r.urls))
	for name := range r.urls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Caller returns the caller for a network, dialling it on first use.
func (r *Registry) Caller(ctx context.Context, network string) (Caller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller, ok := r.clients[network]; ok {
		return caller, nil
	}
	url, ok := r.urls[network]
	if !ok || url == "" {
		return nil, fmt.Errorf("no rpc url configured for network %q", network)
	}

	caller, err := r.dial(ctx, network, url)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", network, err)
	}
	if err := verifyChainID(ctx, network, caller); err != nil {
		if closer, ok := caller.(interface{ Close() }); ok {
			closer.Close()
		}
		return nil, err
	}
	r.clients[network] = caller
	r.logger.Debug("network connected", zap.String("network", network))
	return caller, nil
}

// verifyChainID rejects an RPC endpoint that serves a different chain than
// the network it was configured for. Callers that cannot report a chain ID
// are trusted.
func verifyChainID(ctx context.Context, network string, caller Caller) error {
	want, ok := ExpectedChainIDs[network]
	if !ok {
		return nil
	}
	ider, ok := caller.(chainIDer)
	if !ok {
		return nil
	}
	got, err := ider.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id %s: %w", network, err)
	}
	if !got.IsUint64() || got.Uint64() != want {
		return fmt.Errorf("rpc for %s serves chain %s, want %d", network, got, want)
	}
	return nil
}

// WithNetwork makes network active while fn runs and restores the previously
// active network afterwards, whatever fn returns.
func (r *Registry) WithNetwork(ctx context.Context, network string, fn func(Caller) error) error {
	caller, err := r.Caller(ctx, network)
	if err != nil {
		return err
	}

	r.mu.Lock()
	previous := r.active
	r.active = network
	r.mu.Unlock()
	r.logger.Debug("switch network", zap.String("from", previous), zap.String("to", network))

	defer func() {
		r.mu.Lock()
		r.active = previous
		r.mu.Unlock()
		r.logger.Debug("restore network", zap.String("network", previous))
	}()

	return fn(caller)
}

// Close closes every dialled client.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, caller := range r.clients {
		if closer, ok := caller.(interface{ Close() }); ok {
			closer.Close()
		}
		delete(r.clients, name)
	}
}
