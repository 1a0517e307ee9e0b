package service

import (
	"time"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/monitoring"
)

// Session is the externally owned state a workflow reads: the connected
// wallet and the ledger connection. Neither is mutated by the services.
type Session struct {
	Wallet interfaces.WalletProvider
	Ledger interfaces.LedgerConnection
}

func (s Session) identity() (common.PublicKey, error) {
	if s.Wallet == nil {
		return common.PublicKey{}, errors.ErrWalletNotConnected
	}
	pub, ok := s.Wallet.PublicKey()
	if !ok || pub.IsZero() {
		return common.PublicKey{}, errors.ErrWalletNotConnected
	}
	return pub, nil
}

func (s Session) ledger() (interfaces.LedgerConnection, error) {
	if s.Ledger == nil {
		return nil, errors.ErrLedgerUnavailable
	}
	return s.Ledger, nil
}

func inFlightKey(action monitoring.Action, pub common.PublicKey) string {
	return string(action) + ":" + pub.String()
}

// finish records the outcome of one workflow run. Failures are always
// published; successes are published by the caller with their own text.
func finish(notifier *events.Notifier, action monitoring.Action, start time.Time, err error) {
	if err == nil {
		monitoring.RecordAction(action, monitoring.OutcomeSuccess, time.Since(start))
		return
	}
	monitoring.RecordAction(action, monitoring.Outcome(errors.CodeOf(err)), time.Since(start))
	notifier.Failure(string(action), err)
}

// asWorkflowError keeps coded errors as they are and files anything else
// under code.
func asWorkflowError(code errors.ErrorCode, err error) error {
	if _, ok := errors.AsWalletError(err); ok {
		return err
	}
	return errors.Wrapf(code, err)
}
