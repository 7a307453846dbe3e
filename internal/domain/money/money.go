package money

import (
	"math"

	"pos-checkout/internal/pkg/errs"
)

var (
	ErrNegativeAmount = errs.New("amount cannot be negative")
	ErrAmountOverflow = errs.New("amount overflows")
)

// Money is an amount in the smallest currency unit.
type Money struct {
	minor int64
}

func New(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor}, nil
}

func Zero() Money {
	return Money{}
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) Add(other Money) (Money, error) {
	if m.minor > math.MaxInt64-other.minor {
		return Money{}, ErrAmountOverflow
	}
	return Money{minor: m.minor + other.minor}, nil
}

func (m Money) Mul(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, ErrNegativeAmount
	}
	if qty != 0 && m.minor > math.MaxInt64/int64(qty) {
		return Money{}, ErrAmountOverflow
	}
	return Money{minor: m.minor * int64(qty)}, nil
}

func (m Money) Equals(other Money) bool {
	return m.minor == other.minor
}
