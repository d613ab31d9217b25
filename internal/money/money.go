// Package money represents currency amounts as integer cents.
//
// Goals and recorded earnings are kept in cents so that repeated edits never
// accumulate floating point error. Use Units only for display.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned by Parse for malformed input.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a currency amount in cents.
type Amount int64

// maxUnits bounds FromFloat so the cent value fits comfortably in int64
// even after being multiplied by a coefficient.
const maxUnits = 1e12

// FromFloat converts a value in currency units to cents, rounding half away
// from zero. NaN maps to zero and infinities saturate.
func FromFloat(v float64) Amount {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxUnits:
		v = maxUnits
	case v < -maxUnits:
		v = -maxUnits
	}
	return Amount(math.Round(v * 100))
}

// FromUnits converts whole currency units to cents.
func FromUnits(u int64) Amount {
	return Amount(u * 100)
}

// Parse converts a decimal string to cents.
//
// Both dot (12.34) and comma (12,34) separators are accepted. A third decimal
// digit rounds half-up. Negative values are rejected.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !digits(intPart) || !digits(fracPart) {
		return 0, ErrInvalidAmount
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > int64(maxUnits) {
		return 0, ErrInvalidAmount
	}

	var cents int64
	if len(fracPart) > 0 {
		cents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			cents += int64(fracPart[1] - '0')
		}
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			cents++
		}
	}
	return Amount(iv*100 + cents), nil
}

// Units returns the amount in currency units.
func (a Amount) Units() float64 {
	return float64(a) / 100
}

// NonNegative clamps negative amounts to zero.
func (a Amount) NonNegative() Amount {
	if a < 0 {
		return 0
	}
	return a
}

func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
