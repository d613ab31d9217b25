// Package session sequences one user's edits of one week at a time.
//
// Every operation runs as a single mutate-then-recompute step under the
// session lock, commits the new allocation in memory and then writes the
// affected records through the storage.WeekStore. Storage failures are
// reported as error events; the in-memory week stays valid.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/weekgoal/internal/calculator"
	"github.com/mmynk/weekgoal/internal/metrics"
	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/money"
	"github.com/mmynk/weekgoal/internal/storage"
	"github.com/mmynk/weekgoal/internal/weekkey"
)

var (
	// ErrNoIdentity is returned when a session is created without a user ID.
	ErrNoIdentity = errors.New("user id required")
	// ErrNoWeek is returned by mutations before any week has been selected.
	ErrNoWeek = errors.New("no week selected")
	// ErrWeekUnavailable is returned when the week a mutation names cannot be loaded.
	// The previous selection stays in place and nothing is written.
	ErrWeekUnavailable = errors.New("week could not be loaded")
)

// DefaultGoal is the weekly goal of a week that has never been saved.
var DefaultGoal = money.FromUnits(1000)

// Options configures a Session.
type Options struct {
	// DefaultGoal applies to weeks without a stored goal. Zero means DefaultGoal.
	DefaultGoal money.Amount

	// Sink receives every emitted event. Optional.
	Sink Sink

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Now defaults to time.Now; it picks the week Current selects.
	Now func() time.Time
}

// Result is the state after an operation and the event it produced.
type Result struct {
	Week       weekkey.Key
	Allocation models.WeekAllocation
	Event      Event
}

// Session owns the selected week of one user.
type Session struct {
	mu       sync.Mutex
	userID   string
	store    storage.WeekStore
	opts     Options
	week     weekkey.Key
	alloc    models.WeekAllocation
	selected bool
}

// New creates a session for userID with no week selected.
func New(userID string, store storage.WeekStore, opts Options) (*Session, error) {
	if userID == "" {
		return nil, ErrNoIdentity
	}
	if opts.DefaultGoal <= 0 {
		opts.DefaultGoal = DefaultGoal
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{userID: userID, store: store, opts: opts}, nil
}

// UserID returns the identity the session writes under.
func (s *Session) UserID() string {
	return s.userID
}

// Selected reports the selected week without loading anything.
func (s *Session) Selected() (weekkey.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.week, s.selected
}

// Current returns the selected week, selecting the week of today first if
// nothing is selected yet.
func (s *Session) Current(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.selected {
		return s.selectWeek(ctx, weekkey.FromDate(s.opts.Now()))
	}
	return s.result(Event{})
}

// SelectWeek replaces the current week with the stored (or default) state of
// key and runs a full allocation. The previous week's stored data is not
// touched. If loading fails the previous selection is kept.
func (s *Session) SelectWeek(ctx context.Context, key weekkey.Key) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectWeek(ctx, key)
}

func (s *Session) selectWeek(ctx context.Context, key weekkey.Key) Result {
	record, err := s.store.LoadWeek(ctx, s.userID, key)
	if err != nil {
		s.opts.Logger.Error("Failed to load week", "user_id", s.userID, "week", key, "error", err)
		return s.emit(ctx, Event{Kind: EventError, Message: fmt.Sprintf("could not load week %s", key)})
	}

	s.week = key
	s.alloc = calculator.Allocate(fromRecord(record, s.opts.DefaultGoal))
	s.selected = true
	metrics.Allocations.WithLabelValues("full").Inc()

	s.opts.Logger.Debug("Week selected", "user_id", s.userID, "week", key, "stored", record != nil)
	return s.result(Event{})
}

// The mutations below act on week when it is non-empty, selecting it first
// if another week (or none) is selected, and on the selected week otherwise.
// Selection and mutation happen under one hold of the session lock, so a
// concurrent request naming another week cannot slip in between.

// SetWeeklyGoal sets the goal (negative becomes zero) and reallocates every day.
func (s *Session) SetWeeklyGoal(ctx context.Context, week weekkey.Key, goal money.Amount) (Result, error) {
	return s.apply(ctx, week, "full", true, func(w models.WeekAllocation) (models.WeekAllocation, calculator.Outcome, error) {
		next, out := calculator.SetGoal(w, goal)
		return next, out, nil
	})
}

// SetCoefficient shifts day i's coefficient by delta within [0, 3] and
// reallocates every day from the updated coefficients.
func (s *Session) SetCoefficient(ctx context.Context, week weekkey.Key, i int, delta float64) (Result, error) {
	return s.apply(ctx, week, "full", false, func(w models.WeekAllocation) (models.WeekAllocation, calculator.Outcome, error) {
		return calculator.AdjustCoefficient(w, i, delta)
	})
}

// SetActual records the earnings of day i and reallocates the remaining goal
// over the later days. Disabled days ignore the write.
func (s *Session) SetActual(ctx context.Context, week weekkey.Key, i int, actual money.Amount) (Result, error) {
	return s.apply(ctx, week, "tail", false, func(w models.WeekAllocation) (models.WeekAllocation, calculator.Outcome, error) {
		return calculator.SetActual(w, i, actual)
	})
}

// ClearActual resets day i's earnings to zero, with the same reallocation as SetActual.
func (s *Session) ClearActual(ctx context.Context, week weekkey.Key, i int) (Result, error) {
	return s.apply(ctx, week, "tail", false, func(w models.WeekAllocation) (models.WeekAllocation, calculator.Outcome, error) {
		return calculator.ClearActual(w, i)
	})
}

// Save writes the goal and all seven days of the week.
func (s *Session) Save(ctx context.Context, week weekkey.Key) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx, week); err != nil {
		return s.result(Event{}), err
	}
	all := make([]int, models.DaysPerWeek)
	for i := range all {
		all[i] = i
	}
	return s.emit(ctx, s.persist(ctx, true, all)), nil
}

type intent func(models.WeekAllocation) (models.WeekAllocation, calculator.Outcome, error)

// apply runs one intent atomically: the recomputation reads the state the
// mutation produced, and no other operation observes anything in between.
func (s *Session) apply(ctx context.Context, week weekkey.Key, mode string, saveGoal bool, fn intent) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx, week); err != nil {
		return s.result(Event{}), err
	}

	next, out, err := fn(s.alloc)
	if err != nil {
		return Result{}, err
	}
	if out.Rejected {
		s.opts.Logger.Warn("Write to disabled day ignored", "user_id", s.userID, "week", s.week)
		return s.result(Event{}), nil
	}

	s.alloc = next
	metrics.Allocations.WithLabelValues(mode).Inc()

	event := s.persist(ctx, saveGoal, out.Changed)
	if event.Kind != EventError && out.Overshoot > 0 {
		event = Event{Kind: EventOvershoot, Amount: out.Overshoot}
	}
	return s.emit(ctx, event), nil
}

// ensure makes week the selected week. Callers hold s.mu.
func (s *Session) ensure(ctx context.Context, week weekkey.Key) error {
	switch {
	case week == "" && !s.selected:
		return ErrNoWeek
	case week == "" || (s.selected && week == s.week):
		return nil
	}
	if res := s.selectWeek(ctx, week); res.Event.Kind == EventError {
		return fmt.Errorf("%w: %s", ErrWeekUnavailable, week)
	}
	return nil
}

// persist writes the goal (if asked) and the listed days one by one. Every
// write is attempted; failures are joined into a single error event.
func (s *Session) persist(ctx context.Context, saveGoal bool, days []int) Event {
	var errs []error
	if saveGoal {
		if err := s.store.SaveGoal(ctx, s.userID, s.week, s.alloc.Goal); err != nil {
			errs = append(errs, err)
		}
	}
	for _, i := range days {
		date, err := s.week.Date(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.store.SaveDay(ctx, s.userID, date, s.alloc.Days[i]); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.opts.Logger.Error("Failed to save week", "user_id", s.userID, "week", s.week, "error", err)
		return Event{Kind: EventError, Message: fmt.Sprintf("could not save week %s", s.week)}
	}
	return Event{Kind: EventSaved}
}

func (s *Session) emit(ctx context.Context, e Event) Result {
	if e.Kind != EventNone {
		metrics.SessionEvents.WithLabelValues(string(e.Kind)).Inc()
		if s.opts.Sink != nil {
			s.opts.Sink.Emit(ctx, s.userID, e)
		}
	}
	return s.result(e)
}

func (s *Session) result(e Event) Result {
	return Result{Week: s.week, Allocation: s.alloc, Event: e}
}

// fromRecord overlays stored data on a default week. Stored days keep their
// own coefficient, zero included; a disabled day never carries an actual.
func fromRecord(record *models.WeekRecord, defaultGoal money.Amount) models.WeekAllocation {
	w := models.DefaultWeek(defaultGoal)
	if record == nil {
		return w
	}
	if record.Goal != nil {
		w.Goal = record.Goal.NonNegative()
	}
	for _, r := range record.Days {
		if r.Index < 0 || r.Index >= models.DaysPerWeek {
			continue
		}
		day := r.Day
		day.Name = models.DayNames[r.Index]
		day.Coefficient = day.Coefficient.Clamp()
		day.Actual = day.Actual.NonNegative()
		if !day.Coefficient.Active() {
			day.Actual = 0
		}
		w.Days[r.Index] = day
	}
	return w
}
