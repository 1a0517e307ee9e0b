package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/orion/errors"
)

func TestBalance(t *testing.T) {
	w := newFakeWallet(t)
	ledger := &fakeLedger{balance: 1_250_000_000}
	svc := NewBalanceService(nil)

	res, err := svc.Balance(context.Background(), Session{Wallet: w, Ledger: ledger}, "")
	require.NoError(t, err)
	assert.Equal(t, w.key.Address(), res.Address)
	assert.Equal(t, "1.25", res.Amount)

	res, err = svc.Balance(context.Background(), Session{Ledger: ledger}, destination)
	require.NoError(t, err)
	assert.Equal(t, destination, res.Address.String())
}

func TestBalance_Errors(t *testing.T) {
	svc := NewBalanceService(nil)

	_, err := svc.Balance(context.Background(), Session{Ledger: &fakeLedger{}}, "")
	assert.True(t, stderrors.Is(err, errors.ErrWalletNotConnected))

	_, err = svc.Balance(context.Background(), Session{Ledger: &fakeLedger{}}, "short")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidAddress))

	_, err = svc.Balance(context.Background(), Session{Ledger: &fakeLedger{err: fmt.Errorf("connection refused")}}, destination)
	assert.True(t, stderrors.Is(err, errors.ErrLedgerUnavailable))
}

type stubChecker struct{ err error }

func (s stubChecker) CheckHealth(context.Context) error { return s.err }

func TestHealthService(t *testing.T) {
	ok := NewHealthService(stubChecker{}, "devnet", "https://api.devnet.solana.com").Check(context.Background())
	assert.Equal(t, StatusServing, ok.Status)
	assert.Equal(t, "devnet", ok.Cluster)
	assert.Empty(t, ok.Error)

	bad := NewHealthService(stubChecker{err: fmt.Errorf("node is behind")}, "devnet", "x").Check(context.Background())
	assert.Equal(t, StatusNotServing, bad.Status)
	assert.Equal(t, "node is behind", bad.Error)

	none := NewHealthService(nil, "", "").Check(context.Background())
	assert.Equal(t, StatusNotServing, none.Status)
}
