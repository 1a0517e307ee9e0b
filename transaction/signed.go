package transaction

import (
	"encoding/base64"
	"fmt"

	"github.com/mezonai/orion/common"
)

// SignatureSize is the length of an ed25519 signature.
const SignatureSize = 64

// SignedTransaction is a compiled message together with one signature slot
// per required signer.
type SignedTransaction struct {
	Message    *Message
	Signatures [][]byte
}

// NewSignedTransaction allocates empty signature slots for m.
func NewSignedTransaction(m *Message) *SignedTransaction {
	sigs := make([][]byte, m.Header.NumRequiredSignatures)
	for i := range sigs {
		sigs[i] = make([]byte, SignatureSize)
	}
	return &SignedTransaction{Message: m, Signatures: sigs}
}

// AddSignature stores sig in the slot belonging to signer.
func (st *SignedTransaction) AddSignature(signer common.PublicKey, sig []byte) error {
	if len(sig) != SignatureSize {
		return fmt.Errorf("signature must be %d bytes, got %d", SignatureSize, len(sig))
	}
	for i, k := range st.Message.Signers() {
		if k == signer {
			st.Signatures[i] = append([]byte(nil), sig...)
			return nil
		}
	}
	return fmt.Errorf("%s is not a required signer", signer)
}

// IsFullySigned reports whether no signature slot is empty.
func (st *SignedTransaction) IsFullySigned() bool {
	for _, sig := range st.Signatures {
		if isZero(sig) {
			return false
		}
	}
	return len(st.Signatures) > 0
}

// ID is the base58 fee payer signature, which the ledger uses as the
// transaction id.
func (st *SignedTransaction) ID() string {
	if len(st.Signatures) == 0 || isZero(st.Signatures[0]) {
		return ""
	}
	return common.EncodeBytesToBase58(st.Signatures[0])
}

// Serialize encodes signatures followed by the message.
func (st *SignedTransaction) Serialize() ([]byte, error) {
	if len(st.Signatures) != int(st.Message.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf("have %d signatures, message requires %d", len(st.Signatures), st.Message.Header.NumRequiredSignatures)
	}
	buf, err := appendCompactU16(nil, len(st.Signatures))
	if err != nil {
		return nil, err
	}
	for _, sig := range st.Signatures {
		buf = append(buf, sig...)
	}
	msg, err := st.Message.Serialize()
	if err != nil {
		return nil, err
	}
	return append(buf, msg...), nil
}

// Base64 is the encoding expected by sendTransaction.
func (st *SignedTransaction) Base64() (string, error) {
	raw, err := st.Serialize()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ParseSignedTransaction decodes the wire format produced by Serialize.
func ParseSignedTransaction(data []byte) (*SignedTransaction, error) {
	numSigs, n, err := readCompactU16(data)
	if err != nil {
		return nil, fmt.Errorf("signatures: %w", err)
	}
	offset := n
	sigs := make([][]byte, numSigs)
	for i := range sigs {
		if offset+SignatureSize > len(data) {
			return nil, fmt.Errorf("signature %d: unexpected end of data", i)
		}
		sigs[i] = append([]byte(nil), data[offset:offset+SignatureSize]...)
		offset += SignatureSize
	}

	msg, consumed, err := ParseMessage(data[offset:])
	if err != nil {
		return nil, err
	}
	if offset+consumed != len(data) {
		return nil, fmt.Errorf("%d trailing bytes", len(data)-offset-consumed)
	}
	if int(msg.Header.NumRequiredSignatures) != numSigs {
		return nil, fmt.Errorf("have %d signatures, message requires %d", numSigs, msg.Header.NumRequiredSignatures)
	}
	return &SignedTransaction{Message: msg, Signatures: sigs}, nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
