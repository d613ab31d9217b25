package models

import (
	"github.com/mmynk/weekgoal/internal/money"
)

// DaysPerWeek is the fixed length of a week, Monday first.
const DaysPerWeek = 7

// DayNames are the fixed labels of the seven days, by position.
var DayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DefaultCoefficients is the weighting a new week starts with:
// 1, 1, 1, 1.2, 1.5, 2 and Sunday off.
var DefaultCoefficients = [DaysPerWeek]Coefficient{10, 10, 10, 12, 15, 20, 0}

// Day is one weekday of a WeekAllocation.
type Day struct {
	// Name is the weekday label; it never changes.
	Name string

	// Coefficient weights the day's share of the goal. Zero disables the day.
	Coefficient Coefficient

	// Target is the derived goal for the day, in whole currency units.
	Target int64

	// Actual is what was earned on the day. Zero means nothing recorded.
	Actual money.Amount
}

// TargetReached reports whether a recorded actual meets a non-zero target.
func (d Day) TargetReached() bool {
	return d.Actual > 0 && d.Target > 0 && d.Actual >= money.FromUnits(d.Target)
}

// WeekAllocation is one week's goal and days.
type WeekAllocation struct {
	// Goal is the weekly goal, never negative.
	Goal money.Amount

	// Days holds Monday..Sunday.
	Days [DaysPerWeek]Day
}

// DefaultWeek returns a week with the default coefficients, no actuals and
// targets left at zero.
func DefaultWeek(goal money.Amount) WeekAllocation {
	w := WeekAllocation{Goal: goal.NonNegative()}
	for i := range w.Days {
		w.Days[i] = Day{Name: DayNames[i], Coefficient: DefaultCoefficients[i]}
	}
	return w
}

// TotalActual sums the recorded actuals.
func (w WeekAllocation) TotalActual() money.Amount {
	var total money.Amount
	for _, d := range w.Days {
		total += d.Actual
	}
	return total
}

// TotalTarget sums the day targets.
func (w WeekAllocation) TotalTarget() int64 {
	var total int64
	for _, d := range w.Days {
		total += d.Target
	}
	return total
}

// Remaining is the unearned part of the goal, never negative.
func (w WeekAllocation) Remaining() money.Amount {
	return (w.Goal - w.TotalActual()).NonNegative()
}

// Progress is TotalActual / Goal, or 0 when there is no goal.
func (w WeekAllocation) Progress() float64 {
	if w.Goal <= 0 {
		return 0
	}
	return float64(w.TotalActual()) / float64(w.Goal)
}

// WeekRecord is a week as found in storage. Goal is nil when no goal was
// saved; Days only lists the days that have a stored record.
type WeekRecord struct {
	Goal *money.Amount
	Days []DayRecord
}

// DayRecord is a stored day at its position in the week (Monday = 0).
type DayRecord struct {
	Index int
	Day   Day
}
