package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/money"
)

// ErrDayOutOfRange is returned for a day index outside Monday..Sunday.
var ErrDayOutOfRange = errors.New("day index out of range")

// Outcome describes what an intent did to a week.
type Outcome struct {
	// Changed lists the days whose stored record must be rewritten.
	Changed []int

	// Rejected is set when the write targeted a disabled day and nothing changed.
	Rejected bool

	// Overshoot is the amount by which actuals exceed the goal, if any.
	Overshoot money.Amount
}

// SetGoal replaces the weekly goal (negative values become zero) and runs a
// full allocation.
func SetGoal(w models.WeekAllocation, goal money.Amount) (models.WeekAllocation, Outcome) {
	w.Goal = goal.NonNegative()
	return Allocate(w), Outcome{Changed: allDays()}
}

// AdjustCoefficient shifts day i's coefficient by delta within [0, 3] and then
// runs a full allocation over the updated coefficients. Disabling a day also
// drops its recorded actual.
func AdjustCoefficient(w models.WeekAllocation, i int, delta float64) (models.WeekAllocation, Outcome, error) {
	if err := checkIndex(i); err != nil {
		return w, Outcome{}, err
	}
	day := &w.Days[i]
	day.Coefficient = day.Coefficient.Add(delta)
	if !day.Coefficient.Active() {
		day.Actual = 0
	}
	return Allocate(w), Outcome{Changed: allDays()}, nil
}

// SetActual records what was earned on day i (negative values become zero)
// and re-allocates the remaining goal over the following days.
// Writes to a disabled day are rejected and leave the week untouched.
func SetActual(w models.WeekAllocation, i int, actual money.Amount) (models.WeekAllocation, Outcome, error) {
	if err := checkIndex(i); err != nil {
		return w, Outcome{}, err
	}
	if !w.Days[i].Coefficient.Active() {
		return w, Outcome{Rejected: true}, nil
	}
	w.Days[i].Actual = actual.NonNegative()

	changed := []int{i}
	if coefficientSum(w, i+1) > 0 {
		for j := i + 1; j < models.DaysPerWeek; j++ {
			changed = append(changed, j)
		}
	}
	w, overshoot := Reallocate(w, i)
	return w, Outcome{Changed: changed, Overshoot: overshoot}, nil
}

// ClearActual is SetActual with zero.
func ClearActual(w models.WeekAllocation, i int) (models.WeekAllocation, Outcome, error) {
	return SetActual(w, i, 0)
}

func checkIndex(i int) error {
	if i < 0 || i >= models.DaysPerWeek {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, i)
	}
	return nil
}

func allDays() []int {
	days := make([]int, models.DaysPerWeek)
	for i := range days {
		days[i] = i
	}
	return days
}
