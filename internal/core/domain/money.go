package domain

import (
	"math"

	"digital-wallet/pkg/apperror"
)

// Money is a monetary amount in integer minor units. All balance arithmetic
// stays in int64 so there is no binary floating point error anywhere in the
// ledger.
type Money int64

// Add returns m + other, failing with an overflow error if the sum would
// leave the int64 range. Balances must stay representable.
func (m Money) Add(other Money) (Money, error) {
	if other > 0 && m > math.MaxInt64-other {
		return m, apperror.ErrOverflow()
	}
	return m + other, nil
}

// Sub returns m - other, failing with an underflow error if the result would
// be negative. Balances are never allowed below zero.
func (m Money) Sub(other Money) (Money, error) {
	if other > m {
		return m, apperror.ErrUnderflow()
	}
	return m - other, nil
}

// PercentCeil computes a percentage of m expressed in basis points
// (1% = 100 bps), rounding up to the next minor unit. Fees and commissions
// always round in favour of the platform. The amount is split around the
// divisor so the intermediate products stay inside int64 for any balance.
func (m Money) PercentCeil(bps int64) Money {
	if m <= 0 || bps <= 0 {
		return 0
	}
	q, r := int64(m)/10000, int64(m)%10000
	return Money(q*bps + (r*bps+9999)/10000)
}

// IsPositive reports whether m is a valid principal amount.
func (m Money) IsPositive() bool {
	return m > 0
}
