package transaction

import (
	"encoding/binary"
	"fmt"

	"github.com/mezonai/orion/common"
)

// system program instruction discriminators
const (
	systemInstructionTransfer uint32 = 2

	transferDataSize = 4 + 8
)

// TransferParams are the decoded arguments of a system transfer.
type TransferParams struct {
	From     common.PublicKey
	To       common.PublicKey
	Lamports uint64
}

// SystemTransfer builds a native transfer of lamports from -> to.
func SystemTransfer(from, to common.PublicKey, lamports uint64) Instruction {
	data := make([]byte, transferDataSize)
	binary.LittleEndian.PutUint32(data[0:4], systemInstructionTransfer)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	return Instruction{
		ProgramID: common.SystemProgramID,
		Accounts: []AccountMeta{
			{PublicKey: from, IsSigner: true, IsWritable: true},
			{PublicKey: to, IsSigner: false, IsWritable: true},
		},
		Data: data,
	}
}

// DecodeSystemTransfer reverses SystemTransfer.
func DecodeSystemTransfer(ix Instruction) (TransferParams, error) {
	if ix.ProgramID != common.SystemProgramID {
		return TransferParams{}, fmt.Errorf("not a system program instruction: %s", ix.ProgramID)
	}
	if len(ix.Data) != transferDataSize || len(ix.Accounts) != 2 {
		return TransferParams{}, fmt.Errorf("malformed transfer instruction")
	}
	if kind := binary.LittleEndian.Uint32(ix.Data[0:4]); kind != systemInstructionTransfer {
		return TransferParams{}, fmt.Errorf("unexpected system instruction %d", kind)
	}
	return TransferParams{
		From:     ix.Accounts[0].PublicKey,
		To:       ix.Accounts[1].PublicKey,
		Lamports: binary.LittleEndian.Uint64(ix.Data[4:12]),
	}, nil
}
