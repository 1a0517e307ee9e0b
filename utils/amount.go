package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/mezonai/orion/errors"
)

const (
	// NativeDecimals is the number of decimal places of SOL.
	NativeDecimals = 9
	// LamportsPerSol is the minor-units-per-major-unit constant.
	LamportsPerSol uint64 = 1_000_000_000
)

var lamportScale = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(NativeDecimals))

// ToMinorUnits converts a decimal SOL amount to lamports with exact integer
// arithmetic. Digits below one lamport are rejected unless they are zeros.
// Underscores are accepted as digit separators ("1_000").
func ToMinorUnits(amount string) (uint64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(amount), "_", "")
	if s == "" {
		return 0, invalidAmount("amount is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, invalidAmount("amount must not be negative")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if (whole == "" && frac == "") || !isDigits(whole) || !isDigits(frac) {
		return 0, invalidAmount(fmt.Sprintf("%q is not a number", amount))
	}

	if len(frac) > NativeDecimals {
		if strings.Trim(frac[NativeDecimals:], "0") != "" {
			return 0, invalidAmount(fmt.Sprintf("at most %d decimal places are supported", NativeDecimals))
		}
		frac = frac[:NativeDecimals]
	}
	frac += strings.Repeat("0", NativeDecimals-len(frac))

	wholeUnits, err := parseDecimal(whole)
	if err != nil {
		return 0, invalidAmount(err.Error())
	}
	fracUnits, err := parseDecimal(frac)
	if err != nil {
		return 0, invalidAmount(err.Error())
	}

	total, overflow := new(uint256.Int).MulOverflow(wholeUnits, lamportScale)
	if overflow {
		return 0, invalidAmount("amount is too large")
	}
	total, overflow = total.AddOverflow(total, fracUnits)
	if overflow || !total.IsUint64() {
		return 0, invalidAmount("amount is too large")
	}
	return total.Uint64(), nil
}

// WholeToMinorUnits converts an integer number of SOL to lamports.
func WholeToMinorUnits(sol uint64) (uint64, error) {
	total, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(sol), lamportScale)
	if overflow || !total.IsUint64() {
		return 0, invalidAmount("amount is too large")
	}
	return total.Uint64(), nil
}

// FromMinorUnits renders lamports as a decimal SOL string without trailing zeros.
func FromMinorUnits(lamports uint64) string {
	whole := lamports / LamportsPerSol
	frac := lamports % LamportsPerSol
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fracStr := fmt.Sprintf("%0*d", NativeDecimals, frac)
	return strconv.FormatUint(whole, 10) + "." + strings.TrimRight(fracStr, "0")
}

func parseDecimal(digits string) (*uint256.Int, error) {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return uint256.NewInt(0), nil
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, fmt.Errorf("amount is too large")
	}
	return v, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalidAmount(reason string) error {
	return errors.Wrap(errors.ErrCodeInvalidAmount, errors.ErrMsgInvalidAmount, fmt.Errorf("%s", reason))
}
