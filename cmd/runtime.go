package cmd

import (
	"fmt"
	"strings"

	"github.com/mezonai/orion/client"
	"github.com/mezonai/orion/config"
	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/ratelimit"
	"github.com/mezonai/orion/service"
	"github.com/mezonai/orion/types"
	"github.com/mezonai/orion/wallet"
)

// runtime is everything a command needs, wired from appConfig.
type runtime struct {
	cluster  config.Cluster
	client   *client.RpcClient
	session  service.Session
	bus      *events.EventBus
	notifier *events.Notifier
	inflight *ratelimit.InFlight
}

func newRuntime() (*runtime, error) {
	clusters, err := config.LoadClusters(appConfig.Ledger.ClustersFile)
	if err != nil {
		return nil, err
	}
	cluster, err := config.ResolveCluster(appConfig.Ledger, clusters)
	if err != nil {
		return nil, err
	}
	rpc, err := client.NewClient(client.Config{
		Endpoint:      cluster.URL,
		Commitment:    types.Commitment(appConfig.Ledger.Commitment),
		SkipPreflight: appConfig.Ledger.SkipPreflight,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc client: %w", err)
	}
	provider, err := loadWallet()
	if err != nil {
		rpc.Close()
		return nil, err
	}

	bus := events.NewEventBus()
	logx.Debug("CMD", "Using cluster ", cluster.Name, " at ", cluster.URL)
	return &runtime{
		cluster:  cluster,
		client:   rpc,
		session:  service.Session{Wallet: provider, Ledger: rpc},
		bus:      bus,
		notifier: events.NewNotifier(bus),
		inflight: ratelimit.NewInFlight(),
	}, nil
}

func (rt *runtime) Close() {
	rt.client.Close()
}

// loadWallet picks the wallet from flags or config. Without a key the
// session is disconnected.
func loadWallet() (interfaces.WalletProvider, error) {
	var (
		key *wallet.Keypair
		err error
	)
	switch {
	case globalConfig.PrivateKey != "":
		key, err = wallet.ParseKeypair(globalConfig.PrivateKey)
	case appConfig.Wallet.KeyPath != "":
		key, err = wallet.LoadKeypair(appConfig.Wallet.KeyPath)
	default:
		return wallet.Disconnected{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet key: %w", err)
	}
	if globalConfig.ReadOnly {
		return wallet.ReadOnly{Provider: key}, nil
	}
	return key, nil
}

func (rt *runtime) airdropService() *service.AirdropService {
	limiter := ratelimit.NewRateLimiter(&ratelimit.RateLimiterConfig{
		MaxRequests: appConfig.Faucet.MaxRequests,
		WindowSize:  appConfig.Faucet.Window,
	})
	return service.NewAirdropService(service.AirdropConfig{
		Enabled:       appConfig.Faucet.Enabled && rt.cluster.Faucet,
		DefaultAmount: appConfig.Faucet.AmountSol,
	}, limiter, rt.notifier)
}

func parseCommitment(s string) (types.Commitment, error) {
	c := types.Commitment(strings.ToLower(strings.TrimSpace(s)))
	if c != "" && c.Rank() == 0 {
		return "", fmt.Errorf("unknown commitment %q", s)
	}
	return c, nil
}
