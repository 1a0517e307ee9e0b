package wallet

import (
	"context"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
)

// ReadOnly exposes a provider's identity and submission but hides message
// signing, like a wallet that lacks the signMessage capability.
type ReadOnly struct {
	Provider interfaces.WalletProvider
}

func (r ReadOnly) PublicKey() (common.PublicKey, bool) {
	return r.Provider.PublicKey()
}

func (r ReadOnly) SignAndSendTransaction(ctx context.Context, tx *transaction.Transaction, conn interfaces.LedgerConnection) (types.Receipt, error) {
	return r.Provider.SignAndSendTransaction(ctx, tx, conn)
}

// Disconnected is the provider used before a wallet is connected.
type Disconnected struct{}

func (Disconnected) PublicKey() (common.PublicKey, bool) {
	return common.PublicKey{}, false
}

func (Disconnected) SignAndSendTransaction(context.Context, *transaction.Transaction, interfaces.LedgerConnection) (types.Receipt, error) {
	return types.Receipt{}, errors.ErrWalletNotConnected
}

// CanSignMessages reports whether p implements the message signing capability.
func CanSignMessages(p interfaces.WalletProvider) bool {
	_, ok := p.(interfaces.MessageSigner)
	return ok
}
