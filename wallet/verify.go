package wallet

import (
	"fmt"

	ed "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/transaction"
)

// VerifySignature checks an ed25519 signature over message locally.
func VerifySignature(signer common.PublicKey, message, sig []byte) bool {
	if len(sig) != ed.SignatureSize {
		return false
	}
	return ed.Verify(ed.PublicKey(signer[:]), message, sig)
}

// VerifyTransaction checks every required signature of st.
func VerifyTransaction(st *transaction.SignedTransaction) error {
	payload, err := st.Message.Serialize()
	if err != nil {
		return err
	}
	signers := st.Message.Signers()
	if len(signers) != len(st.Signatures) {
		return fmt.Errorf("have %d signatures for %d signers", len(st.Signatures), len(signers))
	}
	for i, signer := range signers {
		if !VerifySignature(signer, payload, st.Signatures[i]) {
			return fmt.Errorf("invalid signature for %s", signer)
		}
	}
	return nil
}
