package interfaces

import (
	"context"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
)

// LedgerConnection is the RPC link to the ledger network.
type LedgerConnection interface {
	// LatestBlockhash returns a recent blockhash to bind new transactions to
	LatestBlockhash(ctx context.Context) (common.Hash, error)
	// SubmitTransaction broadcasts a fully signed transaction once
	SubmitTransaction(ctx context.Context, tx *transaction.SignedTransaction) (types.Receipt, error)
	// RequestTestFunds asks the devnet faucet for lamports
	RequestTestFunds(ctx context.Context, to common.PublicKey, lamports uint64) (types.Receipt, error)
	// GetBalance returns the balance in lamports
	GetBalance(ctx context.Context, addr common.PublicKey) (uint64, error)
	// SignatureStatuses looks up submitted transactions; unknown ones are nil
	SignatureStatuses(ctx context.Context, signatures ...string) ([]*types.SignatureStatus, error)
}
