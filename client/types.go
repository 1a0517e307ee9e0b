package client

import (
	"github.com/mezonai/orion/types"
)

// Method names of the ledger JSON-RPC API.
const (
	methodGetHealth             = "getHealth"
	methodGetLatestBlockhash    = "getLatestBlockhash"
	methodSendTransaction       = "sendTransaction"
	methodRequestAirdrop        = "requestAirdrop"
	methodGetBalance            = "getBalance"
	methodGetSignatureStatuses  = "getSignatureStatuses"
	encodingBase64              = "base64"
	healthOK                    = "ok"
	maxSignatureStatusesPerCall = 256
)

type rpcContext struct {
	Slot uint64 `json:"slot"`
}

type blockhashValue struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

type latestBlockhashResult struct {
	Context rpcContext     `json:"context"`
	Value   blockhashValue `json:"value"`
}

type balanceResult struct {
	Context rpcContext `json:"context"`
	Value   uint64     `json:"value"`
}

type signatureStatusesResult struct {
	Context rpcContext               `json:"context"`
	Value   []*types.SignatureStatus `json:"value"`
}

type commitmentConfig struct {
	Commitment types.Commitment `json:"commitment,omitempty"`
}

type sendTransactionConfig struct {
	Encoding            string           `json:"encoding"`
	PreflightCommitment types.Commitment `json:"preflightCommitment,omitempty"`
	SkipPreflight       bool             `json:"skipPreflight"`
	MaxRetries          *uint            `json:"maxRetries,omitempty"`
}

type signatureStatusConfig struct {
	SearchTransactionHistory bool `json:"searchTransactionHistory"`
}
