package service

import (
	"connectrpc.com/connect"

	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/session"
	"github.com/mmynk/weekgoal/pkg/api"
)

const dateLayout = "2006-01-02"

func weekResponse(res session.Result) *connect.Response[api.WeekResponse] {
	return connect.NewResponse(&api.WeekResponse{
		Week:  toWeek(res),
		Event: toEvent(res.Event),
	})
}

func toWeek(res session.Result) *api.Week {
	w := res.Allocation
	days := make([]api.Day, len(w.Days))
	for i, d := range w.Days {
		days[i] = api.Day{
			Index:            i,
			Name:             d.Name,
			Coefficient:      d.Coefficient.Float(),
			CoefficientLabel: d.Coefficient.String(),
			Enabled:          d.Coefficient.Active(),
			Target:           d.Target,
			Actual:           d.Actual.Units(),
			IsTargetReached:  d.TargetReached(),
		}
		if date, err := res.Week.Date(i); err == nil {
			days[i].Date = date.Format(dateLayout)
		}
	}
	return &api.Week{
		Key:         res.Week.String(),
		Goal:        w.Goal.Units(),
		Days:        days,
		TotalActual: w.TotalActual().Units(),
		TotalTarget: w.TotalTarget(),
		Remaining:   w.Remaining().Units(),
		Progress:    w.Progress(),
	}
}

func toEvent(e session.Event) *api.Event {
	switch e.Kind {
	case session.EventNone:
		return nil
	case session.EventOvershoot:
		return &api.Event{Kind: api.EventOvershoot, Amount: e.Amount.Units()}
	case session.EventSaved:
		return &api.Event{Kind: api.EventSaved}
	default:
		return &api.Event{Kind: api.EventError, Message: e.Message}
	}
}

func toUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toProfile(p *models.Profile, email string) *api.Profile {
	platforms := p.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	return &api.Profile{
		Email:             email,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		VehicleType:       p.VehicleType,
		PreferredZone:     p.PreferredZone,
		YearsOfExperience: p.YearsOfExperience,
		Platforms:         platforms,
		WorkCity:          p.WorkCity,
		UpdatedAt:         p.UpdatedAt,
	}
}

// fromProfile returns a normalized, validated profile owned by userID.
func fromProfile(p *api.Profile, userID string) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:            userID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		VehicleType:       p.VehicleType,
		PreferredZone:     p.PreferredZone,
		YearsOfExperience: p.YearsOfExperience,
		Platforms:         p.Platforms,
		WorkCity:          p.WorkCity,
	}
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}
