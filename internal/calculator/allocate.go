package calculator

import (
	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/money"
)

// Allocate distributes the weekly goal over all days in proportion to their
// coefficients:
//
//	target_i = round(goal × coefficient_i / Σ coefficient)
//
// A week whose coefficients sum to zero is returned unchanged.
// Rounding drift against the goal is left uncorrected.
func Allocate(w models.WeekAllocation) models.WeekAllocation {
	total := coefficientSum(w, 0)
	if total == 0 {
		return w
	}
	goal := int64(w.Goal.NonNegative())
	for i := range w.Days {
		w.Days[i].Target = share(goal, w.Days[i].Coefficient, total)
	}
	return w
}

// Reallocate spreads what is left of the goal over the days strictly after
// anchor, in proportion to their coefficients. Days up to and including the
// anchor keep their targets.
//
// The returned overshoot is how far the recorded actuals exceed the goal;
// in that case every later active day gets a target of zero.
func Reallocate(w models.WeekAllocation, anchor int) (models.WeekAllocation, money.Amount) {
	totalActual := w.TotalActual()
	var overshoot money.Amount
	if totalActual > w.Goal {
		overshoot = totalActual - w.Goal
	}
	remaining := int64((w.Goal - totalActual).NonNegative())

	tail := coefficientSum(w, anchor+1)
	if tail == 0 {
		return w, overshoot
	}
	for j := anchor + 1; j < models.DaysPerWeek; j++ {
		w.Days[j].Target = share(remaining, w.Days[j].Coefficient, tail)
	}
	return w, overshoot
}

// coefficientSum adds the coefficients of days[from:], in tenths.
func coefficientSum(w models.WeekAllocation, from int) int64 {
	var sum int64
	for i := from; i < models.DaysPerWeek; i++ {
		sum += int64(w.Days[i].Coefficient.Clamp())
	}
	return sum
}

// share returns round(cents × c / total) expressed in whole currency units.
// cents is in hundredths and c, total in tenths, so the unit conversion is a
// factor of 100 on the denominator.
func share(cents int64, c models.Coefficient, total int64) int64 {
	return roundDiv(cents*int64(c.Clamp()), total*100)
}

// roundDiv divides num by den rounding half up. num >= 0, den > 0.
func roundDiv(num, den int64) int64 {
	return (2*num + den) / (2 * den)
}
