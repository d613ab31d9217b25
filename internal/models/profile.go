package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidProfile wraps every Profile.Validate failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Accepted profile choices. An empty string means "not chosen yet".
var (
	VehicleTypes    = []string{"berline", "van", "premium", "electric"}
	Zones           = []string{"ville", "airport", "suburbs"}
	ExperienceBands = []string{"0-1", "1-3", "3-5", "5+"}
	Platforms       = []string{"Uber", "Bolt", "Heetch"}
)

const maxNameLen = 100

// Profile describes the driver behind an account. It has no bearing on
// goal allocation.
type Profile struct {
	UserID            string
	FirstName         string
	LastName          string
	VehicleType       string
	PreferredZone     string
	YearsOfExperience string
	Platforms         []string
	WorkCity          string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Normalize trims the free-text fields and drops repeated platforms.
func (p *Profile) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.WorkCity = strings.TrimSpace(p.WorkCity)

	seen := make(map[string]bool, len(p.Platforms))
	platforms := make([]string, 0, len(p.Platforms))
	for _, name := range p.Platforms {
		if !seen[name] {
			seen[name] = true
			platforms = append(platforms, name)
		}
	}
	p.Platforms = platforms
}

// Validate reports the first field holding a value outside its choices.
func (p *Profile) Validate() error {
	for _, f := range []struct {
		field, value string
		allowed      []string
	}{
		{"vehicle type", p.VehicleType, VehicleTypes},
		{"preferred zone", p.PreferredZone, Zones},
		{"years of experience", p.YearsOfExperience, ExperienceBands},
	} {
		if f.value != "" && !slices.Contains(f.allowed, f.value) {
			return fmt.Errorf("%w: unknown %s %q", ErrInvalidProfile, f.field, f.value)
		}
	}
	for _, name := range p.Platforms {
		if !slices.Contains(Platforms, name) {
			return fmt.Errorf("%w: unknown platform %q", ErrInvalidProfile, name)
		}
	}
	for field, value := range map[string]string{"first name": p.FirstName, "last name": p.LastName, "work city": p.WorkCity} {
		if len(value) > maxNameLen {
			return fmt.Errorf("%w: %s longer than %d bytes", ErrInvalidProfile, field, maxNameLen)
		}
	}
	return nil
}
