package client

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/pkg/errors"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
)

type Config struct {
	Endpoint      string
	Commitment    types.Commitment
	SkipPreflight bool
}

// RpcClient talks to a ledger node over JSON-RPC on HTTP.
type RpcClient struct {
	cfg Config
	cli *jrpc2.Client
}

var _ interfaces.LedgerConnection = (*RpcClient)(nil)

func NewClient(cfg Config) (*RpcClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("rpc endpoint is required")
	}
	if cfg.Commitment == "" {
		cfg.Commitment = types.CommitmentConfirmed
	}
	ch := jhttp.NewChannel(cfg.Endpoint, nil)
	return &RpcClient{
		cfg: cfg,
		cli: jrpc2.NewClient(ch, nil),
	}, nil
}

func (c *RpcClient) Endpoint() string {
	return c.cfg.Endpoint
}

func (c *RpcClient) CheckHealth(ctx context.Context) error {
	var status string
	if err := c.cli.CallResult(ctx, methodGetHealth, nil, &status); err != nil {
		return errors.Wrap(err, "health check failed")
	}
	if status != healthOK {
		return errors.Errorf("node unhealthy: %s", status)
	}
	return nil
}

func (c *RpcClient) LatestBlockhash(ctx context.Context) (common.Hash, error) {
	var res latestBlockhashResult
	params := []any{commitmentConfig{Commitment: c.cfg.Commitment}}
	if err := c.cli.CallResult(ctx, methodGetLatestBlockhash, params, &res); err != nil {
		return common.Hash{}, errors.Wrap(err, methodGetLatestBlockhash)
	}
	h, err := common.ParseHash(res.Value.Blockhash)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "invalid blockhash from node")
	}
	return h, nil
}

// SubmitTransaction sends tx exactly once. Node-side rebroadcast is left to
// the node's default policy; the client never retries on its own.
func (c *RpcClient) SubmitTransaction(ctx context.Context, tx *transaction.SignedTransaction) (types.Receipt, error) {
	if !tx.IsFullySigned() {
		return types.Receipt{}, errors.New("transaction is not fully signed")
	}
	encoded, err := tx.Base64()
	if err != nil {
		return types.Receipt{}, errors.Wrap(err, "encode transaction")
	}
	cfg := sendTransactionConfig{
		Encoding:            encodingBase64,
		PreflightCommitment: c.cfg.Commitment,
		SkipPreflight:       c.cfg.SkipPreflight,
	}

	var sig string
	if err := c.cli.CallResult(ctx, methodSendTransaction, []any{encoded, cfg}, &sig); err != nil {
		return types.Receipt{}, errors.Wrap(err, methodSendTransaction)
	}
	if sig == "" {
		return types.Receipt{}, errors.New("node returned an empty signature")
	}
	return types.Receipt{Signature: sig}, nil
}

func (c *RpcClient) RequestTestFunds(ctx context.Context, to common.PublicKey, lamports uint64) (types.Receipt, error) {
	var sig string
	params := []any{to.String(), lamports, commitmentConfig{Commitment: c.cfg.Commitment}}
	if err := c.cli.CallResult(ctx, methodRequestAirdrop, params, &sig); err != nil {
		return types.Receipt{}, errors.Wrap(err, methodRequestAirdrop)
	}
	return types.Receipt{Signature: sig}, nil
}

func (c *RpcClient) GetBalance(ctx context.Context, addr common.PublicKey) (uint64, error) {
	var res balanceResult
	params := []any{addr.String(), commitmentConfig{Commitment: c.cfg.Commitment}}
	if err := c.cli.CallResult(ctx, methodGetBalance, params, &res); err != nil {
		return 0, errors.Wrap(err, methodGetBalance)
	}
	return res.Value, nil
}

func (c *RpcClient) SignatureStatuses(ctx context.Context, signatures ...string) ([]*types.SignatureStatus, error) {
	if len(signatures) == 0 {
		return nil, nil
	}
	if len(signatures) > maxSignatureStatusesPerCall {
		return nil, errors.Errorf("at most %d signatures per call", maxSignatureStatusesPerCall)
	}
	var res signatureStatusesResult
	params := []any{signatures, signatureStatusConfig{SearchTransactionHistory: true}}
	if err := c.cli.CallResult(ctx, methodGetSignatureStatuses, params, &res); err != nil {
		return nil, errors.Wrap(err, methodGetSignatureStatuses)
	}
	if len(res.Value) != len(signatures) {
		return nil, errors.Errorf("node returned %d statuses for %d signatures", len(res.Value), len(signatures))
	}
	return res.Value, nil
}

// RPCErrorCode extracts the JSON-RPC error code from err, if any.
func RPCErrorCode(err error) (int, bool) {
	var rpcErr *jrpc2.Error
	if errors.As(err, &rpcErr) {
		return int(rpcErr.Code), true
	}
	return 0, false
}

// Close closes the underlying HTTP channel
func (c *RpcClient) Close() error {
	return c.cli.Close()
}
