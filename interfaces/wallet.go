package interfaces

import (
	"context"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
)

// WalletProvider is the user's wallet session. The core only reads its
// identity and delegates signing to it.
type WalletProvider interface {
	// PublicKey returns the connected identity, false when disconnected
	PublicKey() (common.PublicKey, bool)
	// SignAndSendTransaction signs tx and submits it through conn in one call.
	// It may block while the user approves the request in the wallet.
	SignAndSendTransaction(ctx context.Context, tx *transaction.Transaction, conn LedgerConnection) (types.Receipt, error)
}

// MessageSigner is an optional wallet capability; providers that cannot sign
// arbitrary messages simply do not implement it.
type MessageSigner interface {
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}
