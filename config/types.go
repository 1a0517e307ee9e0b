package config

import "time"

type LedgerConfig struct {
	Cluster    string `ini:"cluster"`
	Endpoint   string `ini:"endpoint"`
	Commitment string `ini:"commitment"`
	// ClustersFile optionally overrides the built-in cluster table.
	ClustersFile  string `ini:"clusters_file"`
	SkipPreflight bool   `ini:"skip_preflight"`
}

type FaucetConfig struct {
	Enabled     bool          `ini:"enabled"`
	AmountSol   string        `ini:"amount_sol"`
	MaxRequests int           `ini:"max_requests"`
	Window      time.Duration `ini:"window"`
}

type APIConfig struct {
	ListenAddr     string   `ini:"listen_addr"`
	AllowedOrigins []string `ini:"allowed_origins" delim:","`
}

type LogConfig struct {
	File       string `ini:"file"`
	MaxSizeMB  int    `ini:"max_size_mb"`
	MaxAgeDays int    `ini:"max_age_days"`
	Debug      bool   `ini:"debug"`
	Console    bool   `ini:"console"`
}

type WalletConfig struct {
	KeyPath string `ini:"key_path"`
}

// AppConfig is the whole orion.ini file.
type AppConfig struct {
	Ledger LedgerConfig
	Faucet FaucetConfig
	API    APIConfig
	Log    LogConfig
	Wallet WalletConfig
}

// Cluster is one entry of clusters.yml.
type Cluster struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Faucet  bool   `yaml:"faucet"`
	Default bool   `yaml:"default"`
}

// ClustersFile is the top-level structure for clusters.yml
type ClustersFile struct {
	Clusters []Cluster `yaml:"clusters"`
}
