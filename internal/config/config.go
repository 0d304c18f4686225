package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPC             map[string]string
	Root            string
	ProposalDir     string
	Output          string
	AddressBook     string
	GaugeController string
	GaugeAdder      string
	RowsOut         string
	PostgresDSN     string
	GithubRetries   int
	RPCTimeout      time.Duration
	LogLevel        string
}

// rpcFlags maps per-chain flags to the network names the registry knows.
var rpcFlags = map[string]string{
	"rpc-mainnet":  "mainnet",
	"rpc-arbitrum": "arbitrum-main",
	"rpc-polygon":  "polygon-main",
	"rpc-gnosis":   "gnosis-main",
	"rpc-optimism": "optimism-main",
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GAUGESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("root", ".")
	v.SetDefault("proposal-dir", "BIPs/")
	v.SetDefault("output", "output.txt")
	v.SetDefault("github-retries", 3)
	v.SetDefault("rpc-timeout", time.Duration(0))
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPC:             getStringMap(v, "rpc-extra"),
		Root:            v.GetString("root"),
		ProposalDir:     v.GetString("proposal-dir"),
		Output:          v.GetString("output"),
		AddressBook:     v.GetString("addressbook"),
		GaugeController: v.GetString("gauge-controller"),
		GaugeAdder:      v.GetString("gauge-adder"),
		RowsOut:         v.GetString("rows-out"),
		PostgresDSN:     v.GetString("pg-dsn"),
		GithubRetries:   v.GetInt("github-retries"),
		RPCTimeout:      v.GetDuration("rpc-timeout"),
		LogLevel:        v.GetString("log-level"),
	}
	for key, network := range rpcFlags {
		if url := strings.TrimSpace(v.GetString(key)); url != "" {
			cfg.RPC[network] = url
		}
	}

	if cfg.ProposalDir == "" {
		return Config{}, fmt.Errorf("proposal-dir must not be empty")
	}
	if cfg.Output == "" {
		return Config{}, fmt.Errorf("output must not be empty")
	}
	if cfg.RPCTimeout < 0 {
		return Config{}, fmt.Errorf("rpc-timeout must not be negative")
	}

	return cfg, nil
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
