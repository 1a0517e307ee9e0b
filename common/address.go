package common

import (
	"fmt"
	"strings"

	"github.com/mezonai/orion/errors"
)

const (
	PublicKeySize = 32
	HashSize      = 32

	// base58 of 32 bytes is between 32 and 44 characters.
	minAddressLength = 32
	maxAddressLength = 44
)

// PublicKey is a wallet identity: the ed25519 public key that doubles as the
// account address on the ledger.
type PublicKey [PublicKeySize]byte

// SystemProgramID is the native program that owns transfers.
var SystemProgramID = PublicKey{}

// ParseAddress validates a user supplied address and returns its canonical
// representation. Errors wrap errors.ErrInvalidAddress.
func ParseAddress(addr string) (PublicKey, error) {
	s := strings.TrimSpace(addr)
	if s == "" {
		return PublicKey{}, invalidAddress(fmt.Errorf("address is empty"))
	}
	if len(s) < minAddressLength || len(s) > maxAddressLength {
		return PublicKey{}, invalidAddress(fmt.Errorf("expected %d-%d characters, got %d", minAddressLength, maxAddressLength, len(s)))
	}
	for i, c := range s {
		if !isBase58Char(c) {
			return PublicKey{}, invalidAddress(fmt.Errorf("invalid character '%c' at position %d", c, i))
		}
	}
	decoded, err := DecodeBase58Fixed(s, PublicKeySize)
	if err != nil {
		return PublicKey{}, invalidAddress(err)
	}

	var pk PublicKey
	copy(pk[:], decoded)
	if pk.String() != s {
		return PublicKey{}, invalidAddress(fmt.Errorf("non-canonical encoding"))
	}
	return pk, nil
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(addr string) PublicKey {
	pk, err := ParseAddress(addr)
	if err != nil {
		panic(err)
	}
	return pk
}

// PublicKeyFromBytes copies a raw 32-byte key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, invalidAddress(fmt.Errorf("expected %d bytes, got %d", PublicKeySize, len(b)))
	}
	copy(pk[:], b)
	return pk, nil
}

func invalidAddress(cause error) error {
	return errors.Wrap(errors.ErrCodeInvalidAddress, errors.ErrMsgInvalidAddress, cause)
}

func isBase58Char(c rune) bool {
	switch {
	case c >= '1' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return c != 'I' && c != 'O'
	case c >= 'a' && c <= 'z':
		return c != 'l'
	}
	return false
}

func (pk PublicKey) String() string {
	return EncodeBytesToBase58(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk[:])
	return out
}

func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

func (pk PublicKey) Equals(other PublicKey) bool {
	return pk == other
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Hash is a 32-byte ledger hash, used for recent blockhashes.
type Hash [HashSize]byte

// ParseHash decodes a base58 blockhash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	decoded, err := DecodeBase58Fixed(strings.TrimSpace(s), HashSize)
	if err != nil {
		return h, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	copy(h[:], decoded)
	return h, nil
}

func (h Hash) String() string {
	return EncodeBytesToBase58(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}
