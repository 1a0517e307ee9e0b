package wallet

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	ed "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
	"github.com/mezonai/orion/utils"
)

var ErrUnsupportedKey = fmt.Errorf("wallet: unsupported private key length")

// Keypair is a local ed25519 wallet. It implements interfaces.WalletProvider
// and interfaces.MessageSigner.
type Keypair struct {
	private ed.PrivateKey
	public  common.PublicKey
}

var (
	_ interfaces.WalletProvider = (*Keypair)(nil)
	_ interfaces.MessageSigner  = (*Keypair)(nil)
)

// NewKeypair accepts a 32-byte seed or a 64-byte seed||public key.
func NewKeypair(key []byte) (*Keypair, error) {
	var private ed.PrivateKey
	switch len(key) {
	case ed.SeedSize:
		private = ed.NewKeyFromSeed(key)
	case ed.PrivateKeySize:
		private = ed.NewKeyFromSeed(key[:ed.SeedSize])
		if !bytes.Equal(private[ed.SeedSize:], key[ed.SeedSize:]) {
			return nil, fmt.Errorf("wallet: public half does not match seed")
		}
	default:
		return nil, ErrUnsupportedKey
	}

	pub, err := common.PublicKeyFromBytes(private.Public().(ed.PublicKey))
	if err != nil {
		return nil, err
	}
	return &Keypair{private: private, public: pub}, nil
}

// GenerateKeypair creates a fresh random keypair.
func GenerateKeypair() (*Keypair, error) {
	_, private, err := ed.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewKeypair(private.Seed())
}

// PublicKey always reports a connected identity.
func (k *Keypair) PublicKey() (common.PublicKey, bool) {
	return k.public, true
}

func (k *Keypair) Address() common.PublicKey {
	return k.public
}

// SeedHex exports the 32-byte seed in the format LoadKeypair reads.
func (k *Keypair) SeedHex() string {
	return hex.EncodeToString(k.private.Seed())
}

// SignMessage signs arbitrary bytes.
func (k *Keypair) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return k.sign(message)
}

// SignAndSendTransaction binds tx to the latest blockhash, signs it as fee
// payer and submits it once through conn.
func (k *Keypair) SignAndSendTransaction(ctx context.Context, tx *transaction.Transaction, conn interfaces.LedgerConnection) (types.Receipt, error) {
	if !tx.FeePayer.Equals(k.public) {
		return types.Receipt{}, fmt.Errorf("wallet: fee payer %s is not %s", tx.FeePayer, k.public)
	}

	blockhash, err := conn.LatestBlockhash(ctx)
	if err != nil {
		return types.Receipt{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	msg, err := tx.Compile(blockhash)
	if err != nil {
		return types.Receipt{}, err
	}
	payload, err := msg.Serialize()
	if err != nil {
		return types.Receipt{}, err
	}

	signed := transaction.NewSignedTransaction(msg)
	for _, signer := range msg.Signers() {
		if !signer.Equals(k.public) {
			return types.Receipt{}, fmt.Errorf("wallet: transaction needs a signature from %s", signer)
		}
	}
	sig, err := k.sign(payload)
	if err != nil {
		return types.Receipt{}, err
	}
	if err := signed.AddSignature(k.public, sig); err != nil {
		return types.Receipt{}, err
	}
	if err := VerifyTransaction(signed); err != nil {
		return types.Receipt{}, fmt.Errorf("wallet: signed transaction does not verify: %w", err)
	}

	logx.Debug("WALLET", "Submitting transaction ", utils.ShortenLog(signed.ID()), " with blockhash ", blockhash)
	return conn.SubmitTransaction(ctx, signed)
}

func (k *Keypair) sign(message []byte) ([]byte, error) {
	return k.private.Sign(nil, message, crypto.Hash(0))
}
