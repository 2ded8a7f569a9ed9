package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits every amount carries.
const AmountScale = 4

// Bounds of a signed 64-bit fixed-point number with AmountScale fractional digits.
var (
	MaxAmount = decimal.New(math.MaxInt64, -AmountScale)
	MinAmount = decimal.New(math.MinInt64, -AmountScale)
)

// amountPattern accepts plain decimal notation only. Exponents are refused
// before they reach decimal arithmetic, which would rescale them to full size.
var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount parses a decimal string, rejecting values that need more than
// AmountScale fractional digits or that do not fit the fixed-point range.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedRecord, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedRecord, s)
	}

	if !d.Equal(d.Truncate(AmountScale)) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountPrecision, s)
	}

	if !InRange(d) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountOutOfRange, s)
	}

	return d, nil
}

// InRange reports whether d fits the fixed-point range.
func InRange(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(MinAmount) && d.LessThanOrEqual(MaxAmount)
}

// Add returns a+b or ErrArithmeticOverflow.
func Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	sum := a.Add(b)
	if !InRange(sum) {
		return decimal.Zero, fmt.Errorf("%w: %s + %s", ErrArithmeticOverflow, a, b)
	}
	return sum, nil
}

// Sub returns a-b or ErrArithmeticOverflow.
func Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	diff := a.Sub(b)
	if !InRange(diff) {
		return decimal.Zero, fmt.Errorf("%w: %s - %s", ErrArithmeticOverflow, a, b)
	}
	return diff, nil
}

// FormatAmount renders d with exactly AmountScale fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
