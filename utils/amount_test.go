package utils

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/mezonai/orion/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits_Exact(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"0", 0},
		{"2", 2 * LamportsPerSol},
		{"0.1", 100_000_000},
		{"0.3", 300_000_000},
		{"1.1", 1_100_000_000},
		{"0.000000001", 1},
		{".25", 250_000_000},
		{"3.", 3 * LamportsPerSol},
		{"1_000", 1000 * LamportsPerSol},
		{" 7 ", 7 * LamportsPerSol},
		{"007.5", 7_500_000_000},
		{"1.0000000000000", LamportsPerSol},
		{"18446744073.709551615", math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ToMinorUnits(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMinorUnits_Invalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		".",
		"-1",
		"-0.5",
		"+1",
		"abc",
		"1e9",
		"1.2.3",
		"1,5",
		"0x10",
		"0.0000000001",
		"1.0000000005",
		"18446744073.709551616",
		"99999999999999999999999999999999999999999999999999999999999999999999999999999999",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ToMinorUnits(input)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidAmount), "got %v", err)
		})
	}
}

func TestWholeToMinorUnits(t *testing.T) {
	got, err := WholeToMinorUnits(2)
	require.NoError(t, err)
	assert.Equal(t, 2*LamportsPerSol, got)

	_, err = WholeToMinorUnits(math.MaxUint64)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidAmount))
}

func TestFromMinorUnits(t *testing.T) {
	tests := []struct {
		lamports uint64
		want     string
	}{
		{0, "0"},
		{1, "0.000000001"},
		{LamportsPerSol, "1"},
		{2_500_000_000, "2.5"},
		{math.MaxUint64, "18446744073.709551615"},
	}
	for _, tt := range tests {
		if got := FromMinorUnits(tt.lamports); got != tt.want {
			t.Errorf("FromMinorUnits(%d) = %q, want %q", tt.lamports, got, tt.want)
		}
	}
}

func TestMinorUnits_RoundTripFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 1000; i++ {
		var lamports uint64
		f.Fuzz(&lamports)

		back, err := ToMinorUnits(FromMinorUnits(lamports))
		if err != nil {
			t.Fatalf("ToMinorUnits(FromMinorUnits(%d)) failed: %v", lamports, err)
		}
		if back != lamports {
			t.Fatalf("round trip changed value: %d -> %d", lamports, back)
		}
	}
}

func TestShortenLog(t *testing.T) {
	assert.Equal(t, "abc", ShortenLog("abc"))
	assert.Equal(t, "abcd...mnop", ShortenLog("abcdefghijklmnop"))
	assert.Equal(t, "Tokenkeg...623VQ5DA", ShortenLog("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
}

func TestSecondsBetween(t *testing.T) {
	from := time.Unix(100, 0)
	assert.Equal(t, 2.5, SecondsBetween(from, from.Add(2500*time.Millisecond)))
}
