package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/mezonai/orion/jsonx"
)

// ErrorCode represents standardized error codes for wallet workflows
type ErrorCode string

const (
	// General errors
	ErrCodeInternal ErrorCode = "internal_error"

	// Wallet capability errors
	ErrCodeWalletNotConnected ErrorCode = "wallet_not_connected"
	ErrCodeSigningUnsupported ErrorCode = "signing_unsupported"

	// Validation errors
	ErrCodeInvalidAddress ErrorCode = "invalid_address"
	ErrCodeInvalidAmount  ErrorCode = "invalid_amount"
	ErrCodeInvalidMessage ErrorCode = "invalid_message"

	// Verification and submission errors
	ErrCodeSignatureInvalid  ErrorCode = "signature_invalid"
	ErrCodeSubmissionFailed  ErrorCode = "submission_failed"
	ErrCodeLedgerUnavailable ErrorCode = "ledger_unavailable"

	// Flow control errors
	ErrCodeActionInFlight    ErrorCode = "action_in_flight"
	ErrCodeRateLimited       ErrorCode = "rate_limited"
	ErrCodeFaucetUnavailable ErrorCode = "faucet_unavailable"
)

// Error message constants - user-friendly and concise
const (
	ErrMsgInternal           = "Something went wrong, please try again"
	ErrMsgWalletNotConnected = "Wallet not connected"
	ErrMsgSigningUnsupported = "Wallet does not support message signing"
	ErrMsgInvalidAddress     = "Destination address is invalid"
	ErrMsgInvalidAmount      = "Amount is invalid"
	ErrMsgInvalidMessage     = "Message is invalid"
	ErrMsgSignatureInvalid   = "Message signature invalid"
	ErrMsgSubmissionFailed   = "Transaction submission failed"
	ErrMsgLedgerUnavailable  = "Could not reach the ledger network"
	ErrMsgActionInFlight     = "A previous request is still pending in your wallet"
	ErrMsgRateLimited        = "Too many requests, please slow down"
	ErrMsgFaucetUnavailable  = "Airdrops are not available on this network"
)

// Sentinels for errors.Is matching; comparison is by code only.
var (
	ErrWalletNotConnected = NewError(ErrCodeWalletNotConnected, ErrMsgWalletNotConnected)
	ErrSigningUnsupported = NewError(ErrCodeSigningUnsupported, ErrMsgSigningUnsupported)
	ErrInvalidAddress     = NewError(ErrCodeInvalidAddress, ErrMsgInvalidAddress)
	ErrInvalidAmount      = NewError(ErrCodeInvalidAmount, ErrMsgInvalidAmount)
	ErrInvalidMessage     = NewError(ErrCodeInvalidMessage, ErrMsgInvalidMessage)
	ErrSignatureInvalid   = NewError(ErrCodeSignatureInvalid, ErrMsgSignatureInvalid)
	ErrSubmissionFailed   = NewError(ErrCodeSubmissionFailed, ErrMsgSubmissionFailed)
	ErrLedgerUnavailable  = NewError(ErrCodeLedgerUnavailable, ErrMsgLedgerUnavailable)
	ErrActionInFlight     = NewError(ErrCodeActionInFlight, ErrMsgActionInFlight)
	ErrRateLimited        = NewError(ErrCodeRateLimited, ErrMsgRateLimited)
	ErrFaucetUnavailable  = NewError(ErrCodeFaucetUnavailable, ErrMsgFaucetUnavailable)
)

var httpStatusMap = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeWalletNotConnected: http.StatusPreconditionFailed,
	ErrCodeSigningUnsupported: http.StatusNotImplemented,
	ErrCodeInvalidAddress:     http.StatusBadRequest,
	ErrCodeInvalidAmount:      http.StatusBadRequest,
	ErrCodeInvalidMessage:     http.StatusBadRequest,
	ErrCodeSignatureInvalid:   http.StatusBadGateway,
	ErrCodeSubmissionFailed:   http.StatusBadGateway,
	ErrCodeLedgerUnavailable:  http.StatusServiceUnavailable,
	ErrCodeActionInFlight:     http.StatusConflict,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeFaucetUnavailable:  http.StatusForbidden,
}

// WalletError represents a standardized workflow error
type WalletError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`

	cause error
}

// Error implements the error interface
func (e *WalletError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *WalletError) Unwrap() error {
	return e.cause
}

// Is reports whether target carries the same code.
func (e *WalletError) Is(target error) bool {
	t, ok := target.(*WalletError)
	return ok && t.Code == e.Code
}

// JSON renders the error the way the node API reports network errors.
func (e *WalletError) JSON() string {
	data, err := jsonx.Marshal(e)
	if err != nil {
		return `{"code":"` + string(ErrCodeInternal) + `"}`
	}
	return string(data)
}

// NewError creates a new WalletError and returns it as error interface
func NewError(code ErrorCode, message string) error {
	return &WalletError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a code and user-facing message to an underlying cause.
func Wrap(code ErrorCode, message string, cause error) error {
	e := &WalletError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

// Wrapf is Wrap using the default message for code.
func Wrapf(code ErrorCode, cause error) error {
	return Wrap(code, DefaultMessage(code), cause)
}

// DefaultMessage returns the user-facing message registered for code.
func DefaultMessage(code ErrorCode) string {
	switch code {
	case ErrCodeWalletNotConnected:
		return ErrMsgWalletNotConnected
	case ErrCodeSigningUnsupported:
		return ErrMsgSigningUnsupported
	case ErrCodeInvalidAddress:
		return ErrMsgInvalidAddress
	case ErrCodeInvalidAmount:
		return ErrMsgInvalidAmount
	case ErrCodeInvalidMessage:
		return ErrMsgInvalidMessage
	case ErrCodeSignatureInvalid:
		return ErrMsgSignatureInvalid
	case ErrCodeSubmissionFailed:
		return ErrMsgSubmissionFailed
	case ErrCodeLedgerUnavailable:
		return ErrMsgLedgerUnavailable
	case ErrCodeActionInFlight:
		return ErrMsgActionInFlight
	case ErrCodeRateLimited:
		return ErrMsgRateLimited
	case ErrCodeFaucetUnavailable:
		return ErrMsgFaucetUnavailable
	default:
		return ErrMsgInternal
	}
}

// AsWalletError finds the first WalletError in err's chain.
func AsWalletError(err error) (*WalletError, bool) {
	var we *WalletError
	if stderrors.As(err, &we) {
		return we, true
	}
	return nil, false
}

// CodeOf extracts the error code, ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	if we, ok := AsWalletError(err); ok {
		return we.Code
	}
	return ErrCodeInternal
}

// HTTPStatus maps an error code to the status used by the local API.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
