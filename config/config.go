package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/mezonai/orion/logx"
)

// DefaultAppConfig is used when no ini file is given.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Ledger: LedgerConfig{
			Cluster:    DefaultCluster,
			Commitment: DefaultCommitment,
		},
		Faucet: FaucetConfig{
			Enabled:     true,
			AmountSol:   DefaultAirdropSol,
			MaxRequests: DefaultAirdropLimit,
			Window:      DefaultAirdropEvery,
		},
		API: APIConfig{
			ListenAddr: DefaultAPIAddr,
		},
	}
}

// LoadAppConfig reads an ini file over the defaults. Missing sections and
// keys keep their default values.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	sections := []struct {
		name string
		dst  interface{}
	}{
		{"ledger", &cfg.Ledger},
		{"faucet", &cfg.Faucet},
		{"api", &cfg.API},
		{"log", &cfg.Log},
		{"wallet", &cfg.Wallet},
	}
	for _, s := range sections {
		if err := file.Section(s.name).MapTo(s.dst); err != nil {
			return nil, fmt.Errorf("section [%s]: %w", s.name, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logx.Info("CONFIG", fmt.Sprintf("Loaded %s | cluster=%s | endpoint=%s", path, cfg.Ledger.Cluster, cfg.Ledger.Endpoint))
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Ledger.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("ledger.commitment: unknown commitment %q", c.Ledger.Commitment)
	}
	if c.Faucet.MaxRequests <= 0 {
		return fmt.Errorf("faucet.max_requests must be positive")
	}
	if c.Faucet.Window <= 0 {
		return fmt.Errorf("faucet.window must be positive")
	}
	return nil
}

// LoadClusters reads a clusters.yml table. Entries extend and override the
// built-in table.
func LoadClusters(path string) (map[string]Cluster, error) {
	clusters := DefaultClusters()
	if path == "" {
		return clusters, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cf ClustersFile
	if err := yaml.NewDecoder(file).Decode(&cf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for _, c := range cf.Clusters {
		if c.Name == "" || c.URL == "" {
			return nil, fmt.Errorf("%s: cluster entries need name and url", path)
		}
		clusters[c.Name] = c
	}
	logx.Info("CONFIG", fmt.Sprintf("Loaded %d clusters from %s", len(cf.Clusters), path))
	return clusters, nil
}

// DefaultClusters returns the built-in table. Faucets exist everywhere but
// mainnet-beta.
func DefaultClusters() map[string]Cluster {
	out := make(map[string]Cluster, len(defaultClusters))
	for name, url := range defaultClusters {
		out[name] = Cluster{
			Name:    name,
			URL:     url,
			Faucet:  name != ClusterMainnetBeta,
			Default: name == DefaultCluster,
		}
	}
	return out
}

// ResolveCluster picks the endpoint for cfg. An explicit endpoint wins over
// the cluster table; the cluster name still decides faucet availability.
func ResolveCluster(cfg LedgerConfig, clusters map[string]Cluster) (Cluster, error) {
	name := strings.TrimSpace(cfg.Cluster)
	if name == "" {
		name = DefaultCluster
	}
	c, ok := clusters[name]
	if !ok {
		if cfg.Endpoint == "" {
			return Cluster{}, fmt.Errorf("unknown cluster %q", name)
		}
		c = Cluster{Name: name}
	}
	if cfg.Endpoint != "" {
		c.URL = cfg.Endpoint
	}
	return c, nil
}
