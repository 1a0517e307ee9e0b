package transaction

import (
	"fmt"

	"github.com/mezonai/orion/common"
)

const maxAccountKeys = 256

// MessageHeader counts the signer and read-only accounts of a message.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts by index into Message.AccountKeys.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is the signed payload of a legacy transaction.
type Message struct {
	Header          MessageHeader
	AccountKeys     []common.PublicKey
	RecentBlockhash common.Hash
	Instructions    []CompiledInstruction
}

type keyMeta struct {
	key      common.PublicKey
	signer   bool
	writable bool
}

// Compile orders the accounts of tx and binds it to a recent blockhash.
// Order: fee payer, writable signers, read-only signers, writable
// non-signers, read-only non-signers. Duplicate keys are merged.
func (tx *Transaction) Compile(recentBlockhash common.Hash) (*Message, error) {
	if tx == nil || len(tx.Instructions) == 0 {
		return nil, fmt.Errorf("transaction: nothing to compile")
	}
	if recentBlockhash.IsZero() {
		return nil, fmt.Errorf("transaction: recent blockhash is required")
	}

	metas := []keyMeta{{key: tx.FeePayer, signer: true, writable: true}}
	index := map[common.PublicKey]int{tx.FeePayer: 0}
	add := func(k common.PublicKey, signer, writable bool) {
		if i, ok := index[k]; ok {
			metas[i].signer = metas[i].signer || signer
			metas[i].writable = metas[i].writable || writable
			return
		}
		index[k] = len(metas)
		metas = append(metas, keyMeta{key: k, signer: signer, writable: writable})
	}
	for _, ix := range tx.Instructions {
		for _, acc := range ix.Accounts {
			add(acc.PublicKey, acc.IsSigner, acc.IsWritable)
		}
		add(ix.ProgramID, false, false)
	}
	if len(metas) > maxAccountKeys {
		return nil, fmt.Errorf("transaction: too many account keys (%d)", len(metas))
	}

	ordered := make([]keyMeta, 0, len(metas))
	ordered = append(ordered, metas[0])
	rest := metas[1:]
	for _, group := range []struct{ signer, writable bool }{
		{true, true}, {true, false}, {false, true}, {false, false},
	} {
		for _, m := range rest {
			if m.signer == group.signer && m.writable == group.writable {
				ordered = append(ordered, m)
			}
		}
	}

	msg := &Message{
		AccountKeys:     make([]common.PublicKey, len(ordered)),
		RecentBlockhash: recentBlockhash,
	}
	position := make(map[common.PublicKey]uint8, len(ordered))
	for i, m := range ordered {
		msg.AccountKeys[i] = m.key
		position[m.key] = uint8(i)
		switch {
		case m.signer:
			msg.Header.NumRequiredSignatures++
			if !m.writable {
				msg.Header.NumReadonlySignedAccounts++
			}
		case !m.writable:
			msg.Header.NumReadonlyUnsignedAccounts++
		}
	}

	msg.Instructions = make([]CompiledInstruction, len(tx.Instructions))
	for i, ix := range tx.Instructions {
		accounts := make([]uint8, len(ix.Accounts))
		for j, acc := range ix.Accounts {
			accounts[j] = position[acc.PublicKey]
		}
		data := make([]byte, len(ix.Data))
		copy(data, ix.Data)
		msg.Instructions[i] = CompiledInstruction{
			ProgramIDIndex: position[ix.ProgramID],
			Accounts:       accounts,
			Data:           data,
		}
	}
	return msg, nil
}

// Signers returns the keys whose signatures the message requires, in order.
func (m *Message) Signers() []common.PublicKey {
	return m.AccountKeys[:m.Header.NumRequiredSignatures]
}

// IsWritable reports whether the key at index i may be modified.
func (m *Message) IsWritable(i int) bool {
	numSigners := int(m.Header.NumRequiredSignatures)
	if i < numSigners {
		return i < numSigners-int(m.Header.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(m.Header.NumReadonlyUnsignedAccounts)
}

// Instruction expands compiled instruction i back into an Instruction.
func (m *Message) Instruction(i int) (Instruction, error) {
	if i < 0 || i >= len(m.Instructions) {
		return Instruction{}, fmt.Errorf("instruction %d out of range", i)
	}
	ci := m.Instructions[i]
	if int(ci.ProgramIDIndex) >= len(m.AccountKeys) {
		return Instruction{}, fmt.Errorf("program index %d out of range", ci.ProgramIDIndex)
	}
	ix := Instruction{
		ProgramID: m.AccountKeys[ci.ProgramIDIndex],
		Accounts:  make([]AccountMeta, len(ci.Accounts)),
		Data:      ci.Data,
	}
	for j, idx := range ci.Accounts {
		if int(idx) >= len(m.AccountKeys) {
			return Instruction{}, fmt.Errorf("account index %d out of range", idx)
		}
		ix.Accounts[j] = AccountMeta{
			PublicKey:  m.AccountKeys[idx],
			IsSigner:   int(idx) < int(m.Header.NumRequiredSignatures),
			IsWritable: m.IsWritable(int(idx)),
		}
	}
	return ix, nil
}

// Serialize encodes the message in the legacy wire format. These are the
// bytes every signer signs.
func (m *Message) Serialize() ([]byte, error) {
	buf := []byte{
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	}
	var err error
	if buf, err = appendCompactU16(buf, len(m.AccountKeys)); err != nil {
		return nil, err
	}
	for _, k := range m.AccountKeys {
		buf = append(buf, k[:]...)
	}
	buf = append(buf, m.RecentBlockhash[:]...)

	if buf, err = appendCompactU16(buf, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, ci := range m.Instructions {
		buf = append(buf, ci.ProgramIDIndex)
		if buf, err = appendCompactU16(buf, len(ci.Accounts)); err != nil {
			return nil, err
		}
		buf = append(buf, ci.Accounts...)
		if buf, err = appendCompactU16(buf, len(ci.Data)); err != nil {
			return nil, err
		}
		buf = append(buf, ci.Data...)
	}
	return buf, nil
}

// ParseMessage decodes a legacy message and returns the bytes consumed.
func ParseMessage(data []byte) (*Message, int, error) {
	r := &reader{data: data}
	header, err := r.next(3)
	if err != nil {
		return nil, 0, fmt.Errorf("message header: %w", err)
	}
	msg := &Message{Header: MessageHeader{
		NumRequiredSignatures:       header[0],
		NumReadonlySignedAccounts:   header[1],
		NumReadonlyUnsignedAccounts: header[2],
	}}

	numKeys, err := r.compactU16()
	if err != nil {
		return nil, 0, fmt.Errorf("account keys: %w", err)
	}
	msg.AccountKeys = make([]common.PublicKey, numKeys)
	for i := range msg.AccountKeys {
		k, err := r.next(common.PublicKeySize)
		if err != nil {
			return nil, 0, fmt.Errorf("account key %d: %w", i, err)
		}
		copy(msg.AccountKeys[i][:], k)
	}
	if int(msg.Header.NumRequiredSignatures) > numKeys {
		return nil, 0, fmt.Errorf("header requires %d signers but has %d keys", msg.Header.NumRequiredSignatures, numKeys)
	}

	bh, err := r.next(common.HashSize)
	if err != nil {
		return nil, 0, fmt.Errorf("recent blockhash: %w", err)
	}
	copy(msg.RecentBlockhash[:], bh)

	numIxs, err := r.compactU16()
	if err != nil {
		return nil, 0, fmt.Errorf("instructions: %w", err)
	}
	msg.Instructions = make([]CompiledInstruction, numIxs)
	for i := range msg.Instructions {
		pid, err := r.next(1)
		if err != nil {
			return nil, 0, fmt.Errorf("instruction %d: %w", i, err)
		}
		numAccounts, err := r.compactU16()
		if err != nil {
			return nil, 0, fmt.Errorf("instruction %d accounts: %w", i, err)
		}
		accounts, err := r.next(numAccounts)
		if err != nil {
			return nil, 0, fmt.Errorf("instruction %d accounts: %w", i, err)
		}
		dataLen, err := r.compactU16()
		if err != nil {
			return nil, 0, fmt.Errorf("instruction %d data: %w", i, err)
		}
		ixData, err := r.next(dataLen)
		if err != nil {
			return nil, 0, fmt.Errorf("instruction %d data: %w", i, err)
		}
		msg.Instructions[i] = CompiledInstruction{
			ProgramIDIndex: pid[0],
			Accounts:       append([]uint8(nil), accounts...),
			Data:           append([]byte(nil), ixData...),
		}
	}
	return msg, r.pos, nil
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("unexpected end of data at offset %d", r.pos)
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) compactU16() (int, error) {
	v, n, err := readCompactU16(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}
