// Package weekkey converts between calendar dates and ISO-8601 week identifiers
// of the form "2024-W05". Keys address persisted per-week records.
package weekkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidKey is returned when a string is not a valid "<year>-W<week>" key.
var ErrInvalidKey = errors.New("invalid week key")

// DaysPerWeek is the number of days addressed by a key, Monday first.
const DaysPerWeek = 7

// Key identifies an ISO week, e.g. "2024-W05".
type Key string

// FromDate returns the key of the ISO week containing t.
// Only the calendar date of t in its own location is considered.
// Keys of ISO years outside 1..9999 do not parse; Next and Prev never
// produce them.
func FromDate(t time.Time) Key {
	d := dateOnly(t)
	// Move to the Thursday of the same week; its year owns the week.
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := d.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours() / 24)
	week := (days+1+6)/7 // ceil((days+1)/7)
	return format(thursday.Year(), week)
}

// Parse validates s and returns it as a Key.
func Parse(s string) (Key, error) {
	year, week, err := split(s)
	if err != nil {
		return "", err
	}
	return format(year, week), nil
}

// Year returns the ISO year of the key.
func (k Key) Year() int {
	year, _, _ := split(string(k))
	return year
}

// Week returns the ISO week number of the key.
func (k Key) Week() int {
	_, week, _ := split(string(k))
	return week
}

// Monday returns the Monday (UTC midnight) that starts the week.
func (k Key) Monday() (time.Time, error) {
	year, week, err := split(string(k))
	if err != nil {
		return time.Time{}, err
	}
	return mondayOf(year, week), nil
}

// Date returns the date of day i (0 = Monday ... 6 = Sunday) of the week.
func (k Key) Date(i int) (time.Time, error) {
	if i < 0 || i >= DaysPerWeek {
		return time.Time{}, fmt.Errorf("day index %d out of range", i)
	}
	monday, err := k.Monday()
	if err != nil {
		return time.Time{}, err
	}
	return monday.AddDate(0, 0, i), nil
}

// Next returns the key of the following week.
func (k Key) Next() (Key, error) {
	monday, err := k.Monday()
	if err != nil {
		return "", err
	}
	return inRange(FromDate(monday.AddDate(0, 0, DaysPerWeek)))
}

// Prev returns the key of the preceding week.
func (k Key) Prev() (Key, error) {
	monday, err := k.Monday()
	if err != nil {
		return "", err
	}
	return inRange(FromDate(monday.AddDate(0, 0, -DaysPerWeek)))
}

// inRange rejects keys FromDate produced for years Parse does not accept.
func inRange(k Key) (Key, error) {
	if _, _, err := split(string(k)); err != nil {
		return "", err
	}
	return k, nil
}

// DayIndex returns the position of t within its week, Monday = 0.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func (k Key) String() string {
	return string(k)
}

// mondayOf computes the Monday of ISO week w in year y. Week 1 is the week
// containing January 4th.
func mondayOf(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1 := jan4.AddDate(0, 0, -DayIndex(jan4))
	return week1.AddDate(0, 0, (week-1)*7)
}

// weeksInYear returns 52 or 53. December 28th always falls in the last ISO week.
func weeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

func split(s string) (int, int, error) {
	yearPart, weekPart, ok := strings.Cut(strings.TrimSpace(s), "-W")
	if !ok || len(yearPart) != 4 || len(weekPart) < 1 || len(weekPart) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil || week < 1 || week > weeksInYear(year) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return year, week, nil
}

func format(year, week int) Key {
	return Key(fmt.Sprintf("%04d-W%02d", year, week))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
