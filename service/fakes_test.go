package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
	"github.com/mezonai/orion/wallet"
)

type fakeLedger struct {
	mu         sync.Mutex
	submits    int
	airdrops   []uint64
	balance    uint64
	err        error
	statuses   []*types.SignatureStatus
	statusCall int
}

func (l *fakeLedger) LatestBlockhash(context.Context) (common.Hash, error) {
	return common.Hash{1, 2, 3}, nil
}

func (l *fakeLedger) SubmitTransaction(_ context.Context, st *transaction.SignedTransaction) (types.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.submits++
	if l.err != nil {
		return types.Receipt{}, l.err
	}
	return types.Receipt{Signature: st.ID()}, nil
}

func (l *fakeLedger) RequestTestFunds(_ context.Context, _ common.PublicKey, lamports uint64) (types.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.airdrops = append(l.airdrops, lamports)
	if l.err != nil {
		return types.Receipt{}, l.err
	}
	return types.Receipt{Signature: "airdrop-sig"}, nil
}

func (l *fakeLedger) GetBalance(context.Context, common.PublicKey) (uint64, error) {
	return l.balance, l.err
}

// SignatureStatuses replays statuses one call at a time and then repeats
// the last one.
func (l *fakeLedger) SignatureStatuses(_ context.Context, sigs ...string) ([]*types.SignatureStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.statusCall
	if i >= len(l.statuses) {
		i = len(l.statuses) - 1
	}
	l.statusCall++
	return []*types.SignatureStatus{l.statuses[i]}, nil
}

func (l *fakeLedger) submitCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.submits
}

// fakeWallet wraps a real keypair and counts how often each capability
// was used. hook, if set, runs before the wallet acts.
type fakeWallet struct {
	key       *wallet.Keypair
	connected bool
	corrupt   bool
	hook      func()

	mu       sync.Mutex
	signs    int
	sends    int
	lastTx   *transaction.Transaction
	signErr error
	sendErr error
}

var (
	_ interfaces.WalletProvider = (*fakeWallet)(nil)
	_ interfaces.MessageSigner  = (*fakeWallet)(nil)
)

func newFakeWallet(t *testing.T) *fakeWallet {
	t.Helper()
	k, err := wallet.NewKeypair(bytes.Repeat([]byte{42}, 32))
	require.NoError(t, err)
	return &fakeWallet{key: k, connected: true}
}

func (w *fakeWallet) PublicKey() (common.PublicKey, bool) {
	if !w.connected {
		return common.PublicKey{}, false
	}
	return w.key.Address(), true
}

func (w *fakeWallet) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	w.mu.Lock()
	w.signs++
	w.mu.Unlock()
	if w.hook != nil {
		w.hook()
	}
	if w.signErr != nil {
		return nil, w.signErr
	}
	if w.corrupt {
		return w.key.SignMessage(ctx, append([]byte("not what you asked for: "), msg...))
	}
	return w.key.SignMessage(ctx, msg)
}

func (w *fakeWallet) SignAndSendTransaction(ctx context.Context, tx *transaction.Transaction, conn interfaces.LedgerConnection) (types.Receipt, error) {
	w.mu.Lock()
	w.sends++
	w.lastTx = tx
	w.mu.Unlock()
	if w.hook != nil {
		w.hook()
	}
	if w.sendErr != nil {
		return types.Receipt{}, w.sendErr
	}
	return w.key.SignAndSendTransaction(ctx, tx, conn)
}

func (w *fakeWallet) counts() (signs, sends int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.signs, w.sends
}
