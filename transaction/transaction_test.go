package transaction

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/mezonai/orion/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice     = common.PublicKey{1}
	bob       = common.PublicKey{2}
	blockhash = common.Hash{9, 9, 9}
)

func TestSystemTransfer_Encoding(t *testing.T) {
	ix := SystemTransfer(alice, bob, 2_000_000_000)

	assert.Equal(t, common.SystemProgramID, ix.ProgramID)
	// u32le(2) || u64le(2_000_000_000)
	assert.Equal(t, []byte{2, 0, 0, 0, 0x00, 0x94, 0x35, 0x77, 0, 0, 0, 0}, ix.Data)
	require.Len(t, ix.Accounts, 2)
	assert.Equal(t, AccountMeta{PublicKey: alice, IsSigner: true, IsWritable: true}, ix.Accounts[0])
	assert.Equal(t, AccountMeta{PublicKey: bob, IsSigner: false, IsWritable: true}, ix.Accounts[1])

	params, err := DecodeSystemTransfer(ix)
	require.NoError(t, err)
	assert.Equal(t, TransferParams{From: alice, To: bob, Lamports: 2_000_000_000}, params)
}

func TestDecodeSystemTransfer_Rejects(t *testing.T) {
	ix := SystemTransfer(alice, bob, 1)

	other := ix
	other.ProgramID = bob
	_, err := DecodeSystemTransfer(other)
	assert.Error(t, err)

	short := ix
	short.Data = ix.Data[:4]
	_, err = DecodeSystemTransfer(short)
	assert.Error(t, err)

	wrongKind := ix
	wrongKind.Data = append([]byte{3, 0, 0, 0}, ix.Data[4:]...)
	_, err = DecodeSystemTransfer(wrongKind)
	assert.Error(t, err)
}

func TestNewTransaction_Validation(t *testing.T) {
	_, err := NewTransaction(common.PublicKey{}, SystemTransfer(alice, bob, 1))
	assert.Error(t, err)

	_, err = NewTransaction(alice)
	assert.Error(t, err)
}

func TestNewTransaction_CopiesInstructions(t *testing.T) {
	ix := SystemTransfer(alice, bob, 5)
	tx, err := NewTransaction(alice, ix)
	require.NoError(t, err)

	ix.Data[4] = 0xff
	ix.Accounts[1].PublicKey = alice

	params, err := DecodeSystemTransfer(tx.Instructions[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(5), params.Lamports)
	assert.Equal(t, bob, params.To)
}

func TestCompile_TransferLayout(t *testing.T) {
	tx, err := NewTransaction(alice, SystemTransfer(alice, bob, 42))
	require.NoError(t, err)

	msg, err := tx.Compile(blockhash)
	require.NoError(t, err)

	assert.Equal(t, MessageHeader{NumRequiredSignatures: 1, NumReadonlySignedAccounts: 0, NumReadonlyUnsignedAccounts: 1}, msg.Header)
	assert.Equal(t, []common.PublicKey{alice, bob, common.SystemProgramID}, msg.AccountKeys)
	require.Len(t, msg.Instructions, 1)
	assert.Equal(t, uint8(2), msg.Instructions[0].ProgramIDIndex)
	assert.Equal(t, []uint8{0, 1}, msg.Instructions[0].Accounts)
	assert.Equal(t, []common.PublicKey{alice}, msg.Signers())

	ix, err := msg.Instruction(0)
	require.NoError(t, err)
	params, err := DecodeSystemTransfer(ix)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), params.Lamports)
	assert.True(t, ix.Accounts[0].IsSigner)
	assert.True(t, ix.Accounts[1].IsWritable)
}

func TestCompile_SelfTransferMergesKeys(t *testing.T) {
	tx, err := NewTransaction(alice, SystemTransfer(alice, alice, 1))
	require.NoError(t, err)

	msg, err := tx.Compile(blockhash)
	require.NoError(t, err)
	assert.Equal(t, []common.PublicKey{alice, common.SystemProgramID}, msg.AccountKeys)
	assert.Equal(t, []uint8{0, 0}, msg.Instructions[0].Accounts)
}

func TestCompile_RequiresBlockhash(t *testing.T) {
	tx, err := NewTransaction(alice, SystemTransfer(alice, bob, 1))
	require.NoError(t, err)
	_, err = tx.Compile(common.Hash{})
	assert.Error(t, err)
}

func TestMessage_SerializeParseRoundTrip(t *testing.T) {
	tx, err := NewTransaction(alice, SystemTransfer(alice, bob, 7), SystemTransfer(alice, common.PublicKey{3}, 8))
	require.NoError(t, err)
	msg, err := tx.Compile(blockhash)
	require.NoError(t, err)

	raw, err := msg.Serialize()
	require.NoError(t, err)
	// header(3) + keys(1 + 4*32) + blockhash(32) + ixs(1 + 2*(1+1+2+1+12))
	assert.Len(t, raw, 3+1+4*32+32+1+2*(1+1+2+1+12))

	parsed, consumed, err := ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, len(raw), consumed)
	assert.Equal(t, msg, parsed)
}

func TestSignedTransaction_WireFormat(t *testing.T) {
	tx, err := NewTransaction(alice, SystemTransfer(alice, bob, 7))
	require.NoError(t, err)
	msg, err := tx.Compile(blockhash)
	require.NoError(t, err)

	st := NewSignedTransaction(msg)
	assert.False(t, st.IsFullySigned())
	assert.Equal(t, "", st.ID())

	sig := bytes.Repeat([]byte{0xab}, SignatureSize)
	assert.Error(t, st.AddSignature(bob, sig))
	assert.Error(t, st.AddSignature(alice, sig[:10]))
	require.NoError(t, st.AddSignature(alice, sig))
	assert.True(t, st.IsFullySigned())
	assert.Equal(t, common.EncodeBytesToBase58(sig), st.ID())

	raw, err := st.Serialize()
	require.NoError(t, err)
	assert.Equal(t, byte(1), raw[0])
	assert.Equal(t, sig, raw[1:1+SignatureSize])

	encoded, err := st.Base64()
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	parsed, err := ParseSignedTransaction(raw)
	require.NoError(t, err)
	assert.Equal(t, st, parsed)

	_, err = ParseSignedTransaction(append(raw, 0))
	assert.Error(t, err)
	_, err = ParseSignedTransaction(raw[:len(raw)-1])
	assert.Error(t, err)
}

func TestCompactU16(t *testing.T) {
	tests := []struct {
		value int
		want  []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	}
	for _, tt := range tests {
		got, err := appendCompactU16(nil, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "encode %d", tt.value)

		v, n, err := readCompactU16(got)
		require.NoError(t, err)
		assert.Equal(t, tt.value, v)
		assert.Equal(t, len(tt.want), n)
	}

	_, err := appendCompactU16(nil, 0x10000)
	assert.Error(t, err)
	_, _, err = readCompactU16([]byte{0x80})
	assert.Error(t, err)
}
