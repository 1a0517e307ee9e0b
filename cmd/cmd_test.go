package cmd

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/wallet"
)

const testSeed = "0101010101010101010101010101010101010101010101010101010101010101"

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	globalConfig = GlobalConfig{}
	signConfig = SignConfig{}
	verifyConfig = VerifyConfig{}
	transferConfig = TransferConfig{}
	t.Setenv("LOGFILE", filepath.Join(t.TempDir(), "orion.log"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestKeygen_WritesLoadableKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.key")

	out, err := runCommand(t, "keygen", "-o", path)
	require.NoError(t, err)

	key, err := wallet.LoadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, key.Address().String(), strings.TrimSpace(out))

	_, err = runCommand(t, "keygen", "-o", path)
	assert.Error(t, err, "existing key must not be overwritten without --force")
}

func TestSignThenVerify(t *testing.T) {
	out, err := runCommand(t, "sign", "-p", testSeed, "-m", "hello orion")
	require.NoError(t, err)

	signer := regexp.MustCompile(`Signer:\s+(\S+)`).FindStringSubmatch(out)
	sig := regexp.MustCompile(`Signature:\s+(\S+)`).FindStringSubmatch(out)
	require.Len(t, signer, 2, out)
	require.Len(t, sig, 2, out)

	key, err := wallet.ParseKeypair(testSeed)
	require.NoError(t, err)
	assert.Equal(t, key.Address().String(), signer[1])

	out, err = runCommand(t, "verify", "-s", signer[1], "-m", "hello orion", "--signature", sig[1])
	require.NoError(t, err)
	assert.Contains(t, out, "Signature OK")

	_, err = runCommand(t, "verify", "-s", signer[1], "-m", "hello orion!", "--signature", sig[1])
	assert.Error(t, err)
}

func TestSign_ReadOnlyWallet(t *testing.T) {
	_, err := runCommand(t, "sign", "-p", testSeed, "--read-only", "-m", "hi")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrSigningUnsupported), "got %v", err)
}

func TestSign_Disconnected(t *testing.T) {
	_, err := runCommand(t, "sign", "-m", "hi")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrWalletNotConnected), "got %v", err)
}

func TestTransfer_RejectsBeforeNetwork(t *testing.T) {
	// The default endpoint is never dialled: validation fails first.
	_, err := runCommand(t, "transfer", "-p", testSeed, "-t", "not-an-address", "-a", "1")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidAddress), "got %v", err)

	_, err = runCommand(t, "transfer", "-p", testSeed, "-t", "11111111111111111111111111111112", "-a", "0.0000000001")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidAmount), "got %v", err)
}

func TestTransfer_UnknownWaitCommitment(t *testing.T) {
	_, err := runCommand(t, "transfer", "-p", testSeed, "-t", "11111111111111111111111111111112", "-a", "1", "--wait", "eventually")
	assert.Error(t, err)
}

func TestParseCommitment(t *testing.T) {
	c, err := parseCommitment(" Finalized ")
	require.NoError(t, err)
	assert.Equal(t, "finalized", string(c))

	c, err = parseCommitment("")
	require.NoError(t, err)
	assert.Empty(t, c)

	_, err = parseCommitment("soon")
	assert.Error(t, err)
}
