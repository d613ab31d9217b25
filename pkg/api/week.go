package api

// Day is one day of a week view.
type Day struct {
	Index            int     `json:"index"`
	Name             string  `json:"name"`
	Date             string  `json:"date"`
	Coefficient      float64 `json:"coefficient"`
	CoefficientLabel string  `json:"coefficientLabel"`
	Enabled          bool    `json:"enabled"`
	Target           int64   `json:"target"`
	Actual           float64 `json:"actual"`
	IsTargetReached  bool    `json:"isTargetReached"`
}

// Week is the state of a selected week with its summary.
type Week struct {
	Key         string  `json:"key"`
	Goal        float64 `json:"goal"`
	Days        []Day   `json:"days"`
	TotalActual float64 `json:"totalActual"`
	TotalTarget int64   `json:"totalTarget"`
	Remaining   float64 `json:"remaining"`
	Progress    float64 `json:"progress"`
}

// Event kinds.
const (
	EventOvershoot = "overshoot"
	EventSaved     = "saved"
	EventError     = "error"
)

// Event is the notification an operation produced, if any.
type Event struct {
	Kind    string  `json:"kind"`
	Amount  float64 `json:"amount,omitempty"`
	Message string  `json:"message,omitempty"`
}

// WeekResponse is returned by every WeekService call.
type WeekResponse struct {
	Week  *Week  `json:"week"`
	Event *Event `json:"event,omitempty"`
}

// SelectWeekRequest selects Week, or the currently selected week when Week
// is empty, moved by Offset weeks (negative goes back).
type SelectWeekRequest struct {
	Week   string `json:"week,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type GetWeekRequest struct{}

// The mutation requests below act on Week when it is set, selecting it first
// if another week is selected, and on the selected week otherwise.

type SetWeeklyGoalRequest struct {
	Week string  `json:"week,omitempty"`
	Goal float64 `json:"goal"`
}

type SetCoefficientRequest struct {
	Week  string  `json:"week,omitempty"`
	Day   int     `json:"day"`
	Delta float64 `json:"delta"`
}

type SetActualRequest struct {
	Week   string  `json:"week,omitempty"`
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

type ClearActualRequest struct {
	Week string `json:"week,omitempty"`
	Day  int    `json:"day"`
}

type SaveWeekRequest struct {
	Week string `json:"week,omitempty"`
}
