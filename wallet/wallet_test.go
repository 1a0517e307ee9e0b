package wallet

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/transaction"
	"github.com/mezonai/orion/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLedger struct {
	blockhash common.Hash
	submitted []*transaction.SignedTransaction
}

func (l *recordingLedger) LatestBlockhash(context.Context) (common.Hash, error) {
	return l.blockhash, nil
}

func (l *recordingLedger) SubmitTransaction(_ context.Context, st *transaction.SignedTransaction) (types.Receipt, error) {
	l.submitted = append(l.submitted, st)
	return types.Receipt{Signature: st.ID()}, nil
}

func (l *recordingLedger) RequestTestFunds(context.Context, common.PublicKey, uint64) (types.Receipt, error) {
	return types.Receipt{}, nil
}

func (l *recordingLedger) GetBalance(context.Context, common.PublicKey) (uint64, error) {
	return 0, nil
}

func (l *recordingLedger) SignatureStatuses(context.Context, ...string) ([]*types.SignatureStatus, error) {
	return nil, nil
}

func testKeypair(t *testing.T, b byte) *Keypair {
	t.Helper()
	k, err := NewKeypair(bytes.Repeat([]byte{b}, 32))
	require.NoError(t, err)
	return k
}

func TestKeypair_SignAndVerifyMessage(t *testing.T) {
	k := testKeypair(t, 1)
	msg := []byte("Hello, World!")

	sig, err := k.SignMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature(k.Address(), msg, sig))

	tampered := append([]byte(nil), msg...)
	tampered[0] ^= 0x01
	assert.False(t, VerifySignature(k.Address(), tampered, sig))

	badSig := append([]byte(nil), sig...)
	badSig[10] ^= 0x01
	assert.False(t, VerifySignature(k.Address(), msg, badSig))

	assert.False(t, VerifySignature(testKeypair(t, 2).Address(), msg, sig))
	assert.False(t, VerifySignature(k.Address(), msg, sig[:63]))
}

func TestKeypair_DeterministicFromSeed(t *testing.T) {
	a := testKeypair(t, 7)
	b := testKeypair(t, 7)
	assert.Equal(t, a.Address(), b.Address())

	pub, ok := a.PublicKey()
	assert.True(t, ok)
	assert.Equal(t, a.Address(), pub)
	assert.Equal(t, strings.Repeat("07", 32), a.SeedHex())
}

func TestNewKeypair_Lengths(t *testing.T) {
	k := testKeypair(t, 3)
	full := append(bytes.Repeat([]byte{3}, 32), k.Address().Bytes()...)

	k2, err := NewKeypair(full)
	require.NoError(t, err)
	assert.Equal(t, k.Address(), k2.Address())

	full[40] ^= 0xff
	_, err = NewKeypair(full)
	assert.Error(t, err)

	_, err = NewKeypair(make([]byte, 16))
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}

func TestGenerateKeypair(t *testing.T) {
	a, err := GenerateKeypair()
	require.NoError(t, err)
	b, err := GenerateKeypair()
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), b.Address())
	assert.False(t, a.Address().IsZero())
}

func TestKeypair_SignAndSendTransaction(t *testing.T) {
	k := testKeypair(t, 1)
	to := testKeypair(t, 2).Address()
	ledger := &recordingLedger{blockhash: common.Hash{4, 5, 6}}

	tx, err := transaction.NewTransaction(k.Address(), transaction.SystemTransfer(k.Address(), to, 1_000))
	require.NoError(t, err)

	receipt, err := k.SignAndSendTransaction(context.Background(), tx, ledger)
	require.NoError(t, err)
	require.Len(t, ledger.submitted, 1)

	st := ledger.submitted[0]
	assert.Equal(t, st.ID(), receipt.Signature)
	assert.Equal(t, ledger.blockhash, st.Message.RecentBlockhash)
	assert.True(t, st.IsFullySigned())
	require.NoError(t, VerifyTransaction(st))

	st.Signatures[0][0] ^= 0x01
	assert.Error(t, VerifyTransaction(st))
}

func TestKeypair_SignAndSendVerifiesBeforeSubmit(t *testing.T) {
	good := testKeypair(t, 1)
	mismatched := &Keypair{private: testKeypair(t, 3).private, public: good.public}
	ledger := &recordingLedger{blockhash: common.Hash{7}}

	tx, err := transaction.NewTransaction(good.Address(), transaction.SystemTransfer(good.Address(), testKeypair(t, 2).Address(), 1))
	require.NoError(t, err)
	_, err = mismatched.SignAndSendTransaction(context.Background(), tx, ledger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not verify")
	assert.Empty(t, ledger.submitted)
}

func TestKeypair_SignAndSendRejectsForeignPayer(t *testing.T) {
	k := testKeypair(t, 1)
	other := testKeypair(t, 2).Address()
	ledger := &recordingLedger{blockhash: common.Hash{1}}

	tx, err := transaction.NewTransaction(other, transaction.SystemTransfer(other, k.Address(), 1))
	require.NoError(t, err)
	_, err = k.SignAndSendTransaction(context.Background(), tx, ledger)
	assert.Error(t, err)
	assert.Empty(t, ledger.submitted)
}

func TestProviders(t *testing.T) {
	k := testKeypair(t, 1)
	assert.True(t, CanSignMessages(k))

	ro := ReadOnly{Provider: k}
	assert.False(t, CanSignMessages(ro))
	pub, ok := ro.PublicKey()
	assert.True(t, ok)
	assert.Equal(t, k.Address(), pub)

	var d Disconnected
	_, ok = d.PublicKey()
	assert.False(t, ok)
	_, err := d.SignAndSendTransaction(context.Background(), nil, nil)
	assert.True(t, stderrors.Is(err, errors.ErrWalletNotConnected))
}

func TestParseKeypair_Formats(t *testing.T) {
	k := testKeypair(t, 9)

	fromHex, err := ParseKeypair(k.SeedHex() + "\n")
	require.NoError(t, err)
	assert.Equal(t, k.Address(), fromHex.Address())

	fromPrefixed, err := ParseKeypair("0x" + k.SeedHex())
	require.NoError(t, err)
	assert.Equal(t, k.Address(), fromPrefixed.Address())

	// PKCS#8 DER prefix followed by the seed.
	der := "302e020100300506032b657004220420" + k.SeedHex()
	fromDer, err := ParseKeypair(der)
	require.NoError(t, err)
	assert.Equal(t, k.Address(), fromDer.Address())

	full := append(bytes.Repeat([]byte{9}, 32), k.Address().Bytes()...)
	parts := make([]string, len(full))
	for i, b := range full {
		parts[i] = strconv.Itoa(int(b))
	}
	fromJSON, err := ParseKeypair("[" + strings.Join(parts, ",") + "]")
	require.NoError(t, err)
	assert.Equal(t, k.Address(), fromJSON.Address())

	for _, bad := range []string{"", "zz", "[1,2,", "[256]", "abcd"} {
		_, err := ParseKeypair(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSaveAndLoadKeypair(t *testing.T) {
	k := testKeypair(t, 5)
	path := filepath.Join(t.TempDir(), "id.key")

	require.NoError(t, SaveKeypair(path, k))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, k.Address(), loaded.Address())

	_, err = LoadKeypair(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
