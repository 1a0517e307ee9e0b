package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mezonai/orion/config"
	"github.com/mezonai/orion/logx"
)

// GlobalConfig holds the persistent flags shared by every command.
type GlobalConfig struct {
	ConfigFile   string
	ClustersFile string
	Cluster      string
	URL          string
	Commitment   string
	KeyFile      string
	PrivateKey   string
	ReadOnly     bool
	Verbose      bool
}

var (
	globalConfig GlobalConfig
	appConfig    *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "orion",
	Short: "Orion wallet client",
	Long: `Command line interface for signing messages and sending transfers
with an ed25519 wallet on a Solana-compatible ledger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAppConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg
		logx.Init(logx.Options{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Debug:      cfg.Log.Debug || globalConfig.Verbose,
			Console:    cfg.Log.Console,
		})
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalConfig.ConfigFile, "config", "", "path to orion.ini")
	flags.StringVar(&globalConfig.ClustersFile, "clusters", "", "path to clusters.yml")
	flags.StringVarP(&globalConfig.Cluster, "cluster", "c", "", "cluster name (devnet, testnet, mainnet-beta, localnet)")
	flags.StringVarP(&globalConfig.URL, "url", "u", "", "ledger JSON-RPC endpoint, overrides the cluster URL")
	flags.StringVar(&globalConfig.Commitment, "commitment", "", "commitment level (processed, confirmed, finalized)")
	flags.StringVarP(&globalConfig.KeyFile, "private-key-file", "f", "", "wallet key file (hex seed or Solana JSON keypair)")
	flags.StringVarP(&globalConfig.PrivateKey, "private-key", "p", "", "wallet private key in hex")
	flags.BoolVar(&globalConfig.ReadOnly, "read-only", false, "hide the message signing capability of the wallet")
	flags.BoolVarP(&globalConfig.Verbose, "verbose", "v", false, "verbose output")
}

// loadAppConfig reads the ini file and applies flag overrides.
func loadAppConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadAppConfig(globalConfig.ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("cluster") {
		cfg.Ledger.Cluster = globalConfig.Cluster
	}
	if flags.Changed("url") {
		cfg.Ledger.Endpoint = globalConfig.URL
	}
	if flags.Changed("commitment") {
		cfg.Ledger.Commitment = globalConfig.Commitment
	}
	if flags.Changed("clusters") {
		cfg.Ledger.ClustersFile = globalConfig.ClustersFile
	}
	if flags.Changed("private-key-file") {
		cfg.Wallet.KeyPath = globalConfig.KeyFile
	}
	return cfg, cfg.Validate()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
