package money

import (
	"math"
	"testing"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Amount
	}{
		{300, 30000},
		{12.346, 1235},
		{0.1 + 0.2, 30},
		{-5.5, -550},
		{math.NaN(), 0},
		{math.Inf(1), Amount(maxUnits * 100)},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.in); got != tt.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{in: "12.34", want: 1234},
		{in: "12,34", want: 1234},
		{in: "12.345", want: 1235},
		{in: "12.344", want: 1234},
		{in: ".5", want: 50},
		{in: "0", want: 0},
		{in: " 700 ", want: 70000},
		{in: "-1", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "12a", wantErr: true},
		{in: "", wantErr: true},
		{in: "1.٣", wantErr: true},
		{in: "1,٥", wantErr: true},
		{in: "١٢", wantErr: true},
		{in: "１２", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := Amount(123456).String(); got != "1234.56" {
		t.Errorf("String() = %q", got)
	}
	if got := Amount(-5).String(); got != "-0.05" {
		t.Errorf("String() = %q", got)
	}
	if got := Amount(-5).NonNegative(); got != 0 {
		t.Errorf("NonNegative() = %d", got)
	}
}
