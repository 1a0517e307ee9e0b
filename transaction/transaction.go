package transaction

import (
	"fmt"

	"github.com/mezonai/orion/common"
)

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	PublicKey  common.PublicKey `json:"pubkey"`
	IsSigner   bool             `json:"is_signer"`
	IsWritable bool             `json:"is_writable"`
}

// Instruction is a single program invocation.
type Instruction struct {
	ProgramID common.PublicKey `json:"program_id"`
	Accounts  []AccountMeta    `json:"accounts"`
	Data      []byte           `json:"data"`
}

// Transaction is an ordered list of instructions paid for by FeePayer.
// It is built once per user action and is not modified afterwards: signing
// compiles it into a separate SignedTransaction.
type Transaction struct {
	FeePayer     common.PublicKey `json:"fee_payer"`
	Instructions []Instruction    `json:"instructions"`
}

// NewTransaction copies the given instructions into a new Transaction.
func NewTransaction(feePayer common.PublicKey, instructions ...Instruction) (*Transaction, error) {
	if feePayer.IsZero() {
		return nil, fmt.Errorf("transaction: fee payer is required")
	}
	if len(instructions) == 0 {
		return nil, fmt.Errorf("transaction: at least one instruction is required")
	}

	ixs := make([]Instruction, len(instructions))
	for i, ix := range instructions {
		accounts := make([]AccountMeta, len(ix.Accounts))
		copy(accounts, ix.Accounts)
		data := make([]byte, len(ix.Data))
		copy(data, ix.Data)
		ixs[i] = Instruction{ProgramID: ix.ProgramID, Accounts: accounts, Data: data}
	}

	return &Transaction{
		FeePayer:     feePayer,
		Instructions: ixs,
	}, nil
}
