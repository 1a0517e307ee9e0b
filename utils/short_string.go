package utils

import "fmt"

// ShortenLog abbreviates long base58 keys and signatures for log lines.
func ShortenLog(hash string) string {
	indexCut := 8
	if len(hash) <= 8 {
		return hash
	} else if len(hash) <= 16 {
		indexCut = 4
	}
	return fmt.Sprintf("%s...%s", hash[:indexCut], hash[len(hash)-indexCut:])
}
