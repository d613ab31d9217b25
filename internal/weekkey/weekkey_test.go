package weekkey

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Key
	}{
		{"mid year wednesday", date(2024, time.June, 12), "2024-W24"},
		{"monday of week 1", date(2024, time.January, 1), "2024-W01"},
		{"jan 1 on friday belongs to previous year", date(2021, time.January, 1), "2020-W53"},
		{"jan 3 on sunday belongs to previous year", date(2021, time.January, 3), "2020-W53"},
		{"dec 30 on monday belongs to next year", date(2024, time.December, 30), "2025-W01"},
		{"dec 31 on thursday stays in year", date(2020, time.December, 31), "2020-W53"},
		{"sunday closes the week", date(2024, time.June, 16), "2024-W24"},
		{"time of day ignored", time.Date(2024, time.June, 16, 23, 59, 0, 0, time.UTC), "2024-W24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDate(tt.date); got != tt.want {
				t.Errorf("FromDate(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestFromDateMatchesISOWeek(t *testing.T) {
	start := date(1999, time.December, 1)
	for i := 0; i < 365*30; i++ {
		d := start.AddDate(0, 0, i)
		year, week := d.ISOWeek()
		k := FromDate(d)
		if k.Year() != year || k.Week() != week {
			t.Fatalf("FromDate(%s) = %s, ISOWeek gives %d-W%02d", d.Format("2006-01-02"), k, year, week)
		}
	}
}

func TestMonday(t *testing.T) {
	tests := []struct {
		key  Key
		want time.Time
	}{
		{"2024-W01", date(2024, time.January, 1)},
		{"2024-W24", date(2024, time.June, 10)},
		{"2020-W53", date(2020, time.December, 28)},
		{"2021-W01", date(2021, time.January, 4)},
		{"2025-W01", date(2024, time.December, 30)},
		{"2026-W43", date(2026, time.October, 19)},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, err := tt.key.Monday()
			if err != nil {
				t.Fatalf("Monday() error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Monday() = %s, want %s", got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestRoundTripRandomDates(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	base := date(1970, time.January, 1)

	for i := 0; i < 1000; i++ {
		d := base.AddDate(0, 0, r.Intn(365*150))
		monday, err := FromDate(d).Monday()
		if err != nil {
			t.Fatalf("Monday() error for %s: %v", d.Format("2006-01-02"), err)
		}
		if monday.Weekday() != time.Monday {
			t.Fatalf("round trip of %s gave %s, a %s", d.Format("2006-01-02"), monday.Format("2006-01-02"), monday.Weekday())
		}
		gotYear, gotWeek := monday.ISOWeek()
		wantYear, wantWeek := d.ISOWeek()
		if gotYear != wantYear || gotWeek != wantWeek {
			t.Fatalf("round trip of %s left the ISO week: %d-W%02d vs %d-W%02d",
				d.Format("2006-01-02"), gotYear, gotWeek, wantYear, wantWeek)
		}
		if diff := d.Sub(monday); diff < 0 || diff >= 7*24*time.Hour {
			t.Fatalf("%s is not within the week starting %s", d.Format("2006-01-02"), monday.Format("2006-01-02"))
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "2024-W05", want: "2024-W05"},
		{in: "2024-W5", want: "2024-W05"},
		{in: " 2020-W53 ", want: "2020-W53"},
		{in: "2021-W53", wantErr: true},
		{in: "2024-W00", wantErr: true},
		{in: "2024-05", wantErr: true},
		{in: "24-W05", wantErr: true},
		{in: "abcd-W05", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidKey", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateAndNavigation(t *testing.T) {
	k := Key("2020-W53")

	sunday, err := k.Date(6)
	if err != nil {
		t.Fatalf("Date(6) error: %v", err)
	}
	if !sunday.Equal(date(2021, time.January, 3)) {
		t.Errorf("Date(6) = %s, want 2021-01-03", sunday.Format("2006-01-02"))
	}
	if _, err := k.Date(7); err == nil {
		t.Error("expected error for day index 7")
	}

	next, err := k.Next()
	if err != nil || next != "2021-W01" {
		t.Errorf("Next() = %s, %v; want 2021-W01", next, err)
	}
	prev, err := next.Prev()
	if err != nil || prev != k {
		t.Errorf("Prev() = %s, %v; want %s", prev, err, k)
	}
}

func TestNavigationStaysParseable(t *testing.T) {
	last := format(9999, weeksInYear(9999))
	if _, err := Parse(string(last)); err != nil {
		t.Fatalf("Parse(%s) error: %v", last, err)
	}
	if next, err := last.Next(); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Next() of %s = %s, %v; want ErrInvalidKey", last, next, err)
	}

	first := FromDate(date(1, time.January, 4))
	if first != "0001-W01" {
		t.Fatalf("FromDate(0001-01-04) = %s, want 0001-W01", first)
	}
	if prev, err := first.Prev(); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Prev() of %s = %s, %v; want ErrInvalidKey", first, prev, err)
	}
}

func TestDayIndex(t *testing.T) {
	monday := date(2024, time.June, 10)
	for i := 0; i < DaysPerWeek; i++ {
		if got := DayIndex(monday.AddDate(0, 0, i)); got != i {
			t.Errorf("DayIndex(monday+%d) = %d", i, got)
		}
	}
}
