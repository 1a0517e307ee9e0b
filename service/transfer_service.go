package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/monitoring"
	"github.com/mezonai/orion/ratelimit"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
	"github.com/mezonai/orion/utils"
)

// TransferResult describes an accepted transfer.
type TransferResult struct {
	Signature string           `json:"signature"`
	From      common.PublicKey `json:"from"`
	To        common.PublicKey `json:"to"`
	Lamports  uint64           `json:"lamports"`
	Amount    string           `json:"amount"`
}

// PollConfig shapes confirmation polling.
type PollConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultPollConfig() PollConfig {
	return PollConfig{
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

type TransferService struct {
	inflight *ratelimit.InFlight
	notifier *events.Notifier
	poll     PollConfig
}

func NewTransferService(inflight *ratelimit.InFlight, notifier *events.Notifier, poll PollConfig) *TransferService {
	if inflight == nil {
		inflight = ratelimit.NewInFlight()
	}
	if poll.InitialInterval <= 0 {
		poll = DefaultPollConfig()
	}
	return &TransferService{inflight: inflight, notifier: notifier, poll: poll}
}

// BuildTransfer validates the inputs and returns the unsigned transaction.
// Nothing is built when either input is invalid.
func BuildTransfer(from common.PublicKey, destination, amount string) (*transaction.Transaction, uint64, error) {
	to, err := common.ParseAddress(destination)
	if err != nil {
		return nil, 0, err
	}
	lamports, err := utils.ToMinorUnits(amount)
	if err != nil {
		return nil, 0, err
	}
	if lamports == 0 {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount, fmt.Errorf("amount must be greater than zero"))
	}
	if from.IsZero() {
		return nil, 0, errors.ErrWalletNotConnected
	}
	tx, err := transaction.NewTransaction(from, transaction.SystemTransfer(from, to, lamports))
	if err != nil {
		return nil, 0, errors.Wrapf(errors.ErrCodeInternal, err)
	}
	return tx, lamports, nil
}

// Transfer sends amount SOL from the connected wallet to destination. The
// wallet is asked exactly once; a failed submission is never retried.
func (s *TransferService) Transfer(ctx context.Context, sess Session, destination, amount string) (result *TransferResult, err error) {
	start := time.Now()
	defer func() { finish(s.notifier, monitoring.ActionTransfer, start, err) }()

	var from common.PublicKey
	if sess.Wallet != nil {
		if pub, ok := sess.Wallet.PublicKey(); ok {
			from = pub
		}
	}
	tx, lamports, err := BuildTransfer(from, destination, amount)
	if err != nil {
		return nil, err
	}
	ledger, err := sess.ledger()
	if err != nil {
		return nil, err
	}

	release, ok := s.inflight.TryAcquire(inFlightKey(monitoring.ActionTransfer, from))
	if !ok {
		return nil, errors.ErrActionInFlight
	}
	defer release()

	params, err := transaction.DecodeSystemTransfer(tx.Instructions[0])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInternal, err)
	}
	logx.Info("TRANSFER", fmt.Sprintf("Requesting wallet approval | from=%s | to=%s | lamports=%d", from, params.To, lamports))

	receipt, err := sess.Wallet.SignAndSendTransaction(ctx, tx, ledger)
	if err != nil {
		return nil, asWorkflowError(errors.ErrCodeSubmissionFailed, err)
	}

	monitoring.AddLamportsTransferred(lamports)
	result = &TransferResult{
		Signature: receipt.Signature,
		From:      from,
		To:        params.To,
		Lamports:  lamports,
		Amount:    utils.FromMinorUnits(lamports),
	}
	s.notifier.Success(string(monitoring.ActionTransfer),
		fmt.Sprintf("Sent %s SOL to %s", result.Amount, result.To), receipt.Signature)
	return result, nil
}

var errNotConfirmed = fmt.Errorf("transaction not yet confirmed")

// AwaitConfirmation polls the status of signature until it reaches target.
// It only reads; the transaction is never sent again. ctx bounds the wait.
func (s *TransferService) AwaitConfirmation(ctx context.Context, ledger interfaces.LedgerConnection, signature string, target types.Commitment) (*types.SignatureStatus, error) {
	start := time.Now()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.poll.InitialInterval
	b.MaxInterval = s.poll.MaxInterval
	b.MaxElapsedTime = 0

	var status *types.SignatureStatus
	operation := func() error {
		statuses, err := ledger.SignatureStatuses(ctx, signature)
		if err != nil {
			logx.Debug("TRANSFER", "Status lookup failed for ", utils.ShortenLog(signature), ": ", err)
			return err
		}
		if len(statuses) == 0 || statuses[0] == nil {
			return errNotConfirmed
		}
		st := statuses[0]
		if st.Failed() {
			return backoff.Permanent(errors.Wrap(errors.ErrCodeSubmissionFailed, "Transaction failed on chain",
				fmt.Errorf("%v", st.Err)))
		}
		if !st.ConfirmationStatus.Reached(target) {
			return errNotConfirmed
		}
		status = st
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		err = asWorkflowError(errors.ErrCodeLedgerUnavailable, err)
		s.notifier.Failure(string(monitoring.ActionTransfer), err)
		return nil, err
	}
	monitoring.RecordTimeToConfirmation(time.Since(start))
	logx.Info("TRANSFER", fmt.Sprintf("Transaction %s reached %s at slot %d after %.1fs",
		utils.ShortenLog(signature), status.ConfirmationStatus, status.Slot, utils.SecondsBetween(start, time.Now())))
	return status, nil
}
