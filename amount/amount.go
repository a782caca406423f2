package amount

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// RoundingMode selects how fractional minor units are dropped.
type RoundingMode string

const (
	// RoundFloor truncates towards zero. Amounts are never negative, so this
	// never rounds a transfer up.
	RoundFloor RoundingMode = "floor"
	// RoundHalfUp rounds to the nearest minor unit, halves away from zero.
	RoundHalfUp RoundingMode = "half-up"
)

// maxExponent bounds the decimal exponent of an input, so that neither the
// scaling nor the rounding has to materialise an absurd power of ten.
const maxExponent = 80

// MaxBalance is the largest amount a u128 balance can hold.
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)) //nolint:gomnd

// ParseRoundingMode validates a configured rounding mode. An empty string
// selects RoundFloor.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoundFloor:
		return RoundFloor, nil
	case RoundHalfUp:
		return RoundHalfUp, nil
	}
	return "", errors.Errorf("unknown rounding mode %q", s)
}

// Normalizer converts human decimal amounts into integer minor units using
// exact decimal arithmetic.
type Normalizer struct {
	mode RoundingMode
}

// NewNormalizer creates a normalizer, falling back to RoundFloor for an
// unknown mode.
func NewNormalizer(mode RoundingMode) Normalizer {
	m, err := ParseRoundingMode(string(mode))
	if err != nil {
		m = RoundFloor
	}
	return Normalizer{mode: m}
}

// Mode returns the rounding mode in use.
func (n Normalizer) Mode() RoundingMode {
	return n.mode
}

// Parse reads a decimal string. Non numeric input, and exponents out of
// range, are rejected.
func (n Normalizer) Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// Scale multiplies d by 10^decimals and rounds it to an integer. Negative
// values and values that do not fit a u128 balance are rejected.
func (n Normalizer) Scale(d decimal.Decimal, decimals uint8) (*big.Int, bool) {
	if d.IsNegative() {
		return nil, false
	}
	scaled := d.Shift(int32(decimals))
	switch n.mode {
	case RoundHalfUp:
		scaled = scaled.Round(0)
	default:
		scaled = scaled.Floor()
	}
	if integerDigits(scaled) > len(MaxBalance.String()) {
		return nil, false
	}
	raw := scaled.BigInt()
	if raw.Cmp(MaxBalance) > 0 {
		return nil, false
	}
	return raw, true
}

// RawAmount parses s and scales it to minor units.
func (n Normalizer) RawAmount(s string, decimals uint8) (*big.Int, bool) {
	d, ok := n.Parse(s)
	if !ok {
		return nil, false
	}
	return n.Scale(d, decimals)
}

func integerDigits(d decimal.Decimal) int {
	coefficient := d.Coefficient()
	if coefficient.Sign() == 0 {
		return 0
	}
	return len(coefficient.Text(10)) + int(d.Exponent())
}

var defaultNormalizer = NewNormalizer(RoundFloor)

// GetRawAmount converts a decimal string into minor units with the default
// (floor) rounding. ok is false for non numeric, negative or out of range
// input.
func GetRawAmount(s string, decimals uint8) (*big.Int, bool) {
	return defaultNormalizer.RawAmount(s, decimals)
}

// FormatAmount renders a minor unit amount as a decimal string without
// trailing zeros.
func FormatAmount(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	return ToDecimal(raw, decimals).String()
}

// ToDecimal converts a minor unit amount into its decimal value.
func ToDecimal(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}
