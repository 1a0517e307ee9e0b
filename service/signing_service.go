package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/mezonai/orion/common"
	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/interfaces"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/monitoring"
	"github.com/mezonai/orion/ratelimit"
	"github.com/mezonai/orion/wallet"
)

// MaxMessageLength bounds a message in characters after NFC normalization.
const MaxMessageLength = 4096

// SignedMessage is only produced for signatures that verified locally.
type SignedMessage struct {
	Signer    common.PublicKey `json:"signer"`
	Message   string           `json:"message"`
	Signature []byte           `json:"-"`
	Encoded   string           `json:"signature"`
}

type SigningService struct {
	inflight *ratelimit.InFlight
	notifier *events.Notifier
}

func NewSigningService(inflight *ratelimit.InFlight, notifier *events.Notifier) *SigningService {
	if inflight == nil {
		inflight = ratelimit.NewInFlight()
	}
	return &SigningService{inflight: inflight, notifier: notifier}
}

// ValidateMessage checks the text before it reaches the wallet. The bytes
// that get signed are the string's own bytes, not the normalized form.
func ValidateMessage(message string) error {
	if !utf8.ValidString(message) {
		return errors.Wrap(errors.ErrCodeInvalidMessage, errors.ErrMsgInvalidMessage, fmt.Errorf("message is not valid UTF-8"))
	}
	if n := utf8.RuneCountInString(norm.NFC.String(message)); n > MaxMessageLength {
		return errors.Wrap(errors.ErrCodeInvalidMessage, errors.ErrMsgInvalidMessage,
			fmt.Errorf("message has %d characters, at most %d allowed", n, MaxMessageLength))
	}
	return nil
}

// SignMessage asks the wallet to sign message and verifies the result
// against the wallet's identity before returning it. The call waits for
// the wallet as long as ctx allows.
func (s *SigningService) SignMessage(ctx context.Context, sess Session, message string) (result *SignedMessage, err error) {
	start := time.Now()
	defer func() { finish(s.notifier, monitoring.ActionSign, start, err) }()

	pub, err := sess.identity()
	if err != nil {
		return nil, err
	}
	signer, ok := sess.Wallet.(interfaces.MessageSigner)
	if !ok {
		return nil, errors.ErrSigningUnsupported
	}
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}

	release, ok := s.inflight.TryAcquire(inFlightKey(monitoring.ActionSign, pub))
	if !ok {
		return nil, errors.ErrActionInFlight
	}
	defer release()

	data := []byte(message)
	sig, err := signer.SignMessage(ctx, data)
	if err != nil {
		return nil, asWorkflowError(errors.ErrCodeSubmissionFailed, fmt.Errorf("wallet signing failed: %w", err))
	}
	if !wallet.VerifySignature(pub, data, sig) {
		monitoring.IncreaseVerificationFailure()
		logx.Warn("SIGN", "Wallet returned a signature that does not verify for ", pub)
		return nil, errors.Wrap(errors.ErrCodeSignatureInvalid, errors.ErrMsgSignatureInvalid,
			fmt.Errorf("signature does not match message and signer %s", pub))
	}

	result = &SignedMessage{
		Signer:    pub,
		Message:   message,
		Signature: append([]byte(nil), sig...),
		Encoded:   common.EncodeBytesToBase58(sig),
	}
	s.notifier.Success(string(monitoring.ActionSign), "Message signature: "+result.Encoded, "")
	return result, nil
}
