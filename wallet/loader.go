package wallet

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	ed "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/mezonai/orion/jsonx"
)

// LoadKeypair reads a key file. Two formats are accepted: a hex string
// (32-byte seed, 64-byte key, or a PKCS#8 DER blob whose last 32 bytes are
// the seed) and the JSON byte array written by the Solana CLI.
func LoadKeypair(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseKeypair(string(data))
}

// ParseKeypair parses the formats accepted by LoadKeypair.
func ParseKeypair(raw string) (*Keypair, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") {
		var arr []byte
		var ints []int
		if err := jsonx.Unmarshal([]byte(s), &ints); err != nil {
			return nil, fmt.Errorf("invalid keypair json: %w", err)
		}
		arr = make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("invalid keypair json: byte %d out of range", i)
			}
			arr[i] = byte(v)
		}
		return NewKeypair(arr)
	}

	privBytes, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	switch {
	case len(privBytes) == ed.SeedSize, len(privBytes) == ed.PrivateKeySize:
		return NewKeypair(privBytes)
	case len(privBytes) > ed.SeedSize:
		return NewKeypair(privBytes[len(privBytes)-ed.SeedSize:])
	default:
		return nil, ErrUnsupportedKey
	}
}

// SaveKeypair writes the seed in hex with owner-only permissions.
func SaveKeypair(path string, k *Keypair) error {
	return os.WriteFile(path, []byte(k.SeedHex()+"\n"), 0o600)
}
