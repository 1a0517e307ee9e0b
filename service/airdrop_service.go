package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/monitoring"
	"github.com/mezonai/orion/ratelimit"
	"github.com/mezonai/orion/utils"
)

type AirdropConfig struct {
	Enabled bool
	// DefaultAmount is used when the caller leaves the amount empty.
	DefaultAmount string
}

type AirdropResult struct {
	Signature string           `json:"signature"`
	To        common.PublicKey `json:"to"`
	Lamports  uint64           `json:"lamports"`
	Amount    string           `json:"amount"`
}

// AirdropService requests faucet funds for the connected wallet.
type AirdropService struct {
	cfg      AirdropConfig
	limiter  *ratelimit.RateLimiter
	notifier *events.Notifier
}

func NewAirdropService(cfg AirdropConfig, limiter *ratelimit.RateLimiter, notifier *events.Notifier) *AirdropService {
	if cfg.DefaultAmount == "" {
		cfg.DefaultAmount = "1"
	}
	if limiter == nil {
		limiter = ratelimit.NewRateLimiter(ratelimit.DefaultAirdropConfig())
	}
	return &AirdropService{cfg: cfg, limiter: limiter, notifier: notifier}
}

func (s *AirdropService) RequestAirdrop(ctx context.Context, sess Session, amount string) (result *AirdropResult, err error) {
	start := time.Now()
	defer func() { finish(s.notifier, monitoring.ActionAirdrop, start, err) }()

	pub, err := sess.identity()
	if err != nil {
		return nil, err
	}
	if !s.cfg.Enabled {
		return nil, errors.ErrFaucetUnavailable
	}
	if strings.TrimSpace(amount) == "" {
		amount = s.cfg.DefaultAmount
	}
	lamports, err := utils.ToMinorUnits(amount)
	if err != nil {
		return nil, err
	}
	if lamports == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount, fmt.Errorf("amount must be greater than zero"))
	}
	ledger, err := sess.ledger()
	if err != nil {
		return nil, err
	}

	key := pub.String()
	if ok, wait := s.limiter.Reserve(key); !ok {
		return nil, errors.Wrap(errors.ErrCodeRateLimited, errors.ErrMsgRateLimited, &ratelimit.RateLimitError{Key: key, RetryAfter: wait})
	}

	receipt, err := ledger.RequestTestFunds(ctx, pub, lamports)
	if err != nil {
		// a refused request does not count against the window
		s.limiter.Cancel(key)
		return nil, asWorkflowError(errors.ErrCodeSubmissionFailed, err)
	}

	result = &AirdropResult{
		Signature: receipt.Signature,
		To:        pub,
		Lamports:  lamports,
		Amount:    utils.FromMinorUnits(lamports),
	}
	logx.Info("AIRDROP", fmt.Sprintf("Airdrop requested | to=%s | lamports=%d | signature=%s", pub, lamports, receipt.Signature))
	s.notifier.Success(string(monitoring.ActionAirdrop), fmt.Sprintf("Airdropped %s SOL", result.Amount), receipt.Signature)
	return result, nil
}
