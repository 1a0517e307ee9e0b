package service

import (
	"context"
	"strings"
	"time"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/monitoring"
	"github.com/mezonai/orion/utils"
)

type BalanceResult struct {
	Address  common.PublicKey `json:"address"`
	Lamports uint64           `json:"lamports"`
	Amount   string           `json:"amount"`
}

type BalanceService struct {
	notifier *events.Notifier
}

func NewBalanceService(notifier *events.Notifier) *BalanceService {
	return &BalanceService{notifier: notifier}
}

// Balance reads the balance of address, or of the connected wallet when
// address is empty.
func (s *BalanceService) Balance(ctx context.Context, sess Session, address string) (result *BalanceResult, err error) {
	start := time.Now()
	defer func() { finish(s.notifier, monitoring.ActionBalance, start, err) }()

	var pub common.PublicKey
	if strings.TrimSpace(address) == "" {
		if pub, err = sess.identity(); err != nil {
			return nil, err
		}
	} else if pub, err = common.ParseAddress(address); err != nil {
		return nil, err
	}

	ledger, err := sess.ledger()
	if err != nil {
		return nil, err
	}
	lamports, err := ledger.GetBalance(ctx, pub)
	if err != nil {
		return nil, asWorkflowError(errors.ErrCodeLedgerUnavailable, err)
	}
	return &BalanceResult{
		Address:  pub,
		Lamports: lamports,
		Amount:   utils.FromMinorUnits(lamports),
	}, nil
}
