package models

import (
	"fmt"
	"math"
)

// Coefficient is a day's relative weight in tenths: 12 means 1.2.
// Zero marks a day as not worked.
type Coefficient int

const (
	// MinCoefficient disables a day.
	MinCoefficient Coefficient = 0
	// MaxCoefficient is 3.0.
	MaxCoefficient Coefficient = 30
)

// CoefficientFromFloat rounds f to the nearest tenth and clamps it to the valid range.
func CoefficientFromFloat(f float64) Coefficient {
	if math.IsNaN(f) {
		return MinCoefficient
	}
	return clampCoefficient(math.Round(f * 10))
}

// Add returns c shifted by delta, clamped to [MinCoefficient, MaxCoefficient].
// delta is a float such as 0.1 or -0.5 and is rounded to the nearest tenth first.
func (c Coefficient) Add(delta float64) Coefficient {
	if math.IsNaN(delta) {
		return c.Clamp()
	}
	return clampCoefficient(float64(c) + math.Round(delta*10))
}

// Clamp forces c into the valid range.
func (c Coefficient) Clamp() Coefficient {
	return clampCoefficient(float64(c))
}

// Float returns the coefficient as a real number.
func (c Coefficient) Float() float64 {
	return float64(c) / 10
}

// Active reports whether the day takes part in allocation.
func (c Coefficient) Active() bool {
	return c > 0
}

// String formats the coefficient with one decimal, e.g. "1.2".
func (c Coefficient) String() string {
	return fmt.Sprintf("%d.%d", int(c)/10, int(c)%10)
}

func clampCoefficient(tenths float64) Coefficient {
	switch {
	case tenths < float64(MinCoefficient):
		return MinCoefficient
	case tenths > float64(MaxCoefficient):
		return MaxCoefficient
	default:
		return Coefficient(tenths)
	}
}
