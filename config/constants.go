package config

import "time"

// Cluster names understood by the ledger client.
const (
	ClusterDevnet      = "devnet"
	ClusterTestnet     = "testnet"
	ClusterMainnetBeta = "mainnet-beta"
	ClusterLocalnet    = "localnet"
)

const (
	DefaultCluster      = ClusterDevnet
	DefaultCommitment   = "confirmed"
	DefaultAPIAddr      = "127.0.0.1:8080"
	DefaultAirdropSol   = "1"
	DefaultAirdropLimit = 1
	DefaultAirdropEvery = 5 * time.Minute
)

var defaultClusters = map[string]string{
	ClusterDevnet:      "https://api.devnet.solana.com",
	ClusterTestnet:     "https://api.testnet.solana.com",
	ClusterMainnetBeta: "https://api.mainnet-beta.solana.com",
	ClusterLocalnet:    "http://127.0.0.1:8899",
}
