package transaction

import (
	"fmt"
)

const maxCompactU16 = 0xffff

// appendCompactU16 writes n as the ledger's variable length u16.
func appendCompactU16(buf []byte, n int) ([]byte, error) {
	if n < 0 || n > maxCompactU16 {
		return buf, fmt.Errorf("length %d out of compact-u16 range", n)
	}
	rem := n
	for {
		elem := byte(rem & 0x7f)
		rem >>= 7
		if rem == 0 {
			return append(buf, elem), nil
		}
		buf = append(buf, elem|0x80)
	}
}

// readCompactU16 returns the decoded value and the number of bytes consumed.
func readCompactU16(data []byte) (int, int, error) {
	value := 0
	for i := 0; i < 3; i++ {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("compact-u16: unexpected end of data")
		}
		b := data[i]
		value |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if value > maxCompactU16 {
				return 0, 0, fmt.Errorf("compact-u16: value %d overflows", value)
			}
			return value, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("compact-u16: encoding too long")
}
