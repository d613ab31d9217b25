package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/weekgoal/internal/auth"
	"github.com/mmynk/weekgoal/internal/calculator"
	"github.com/mmynk/weekgoal/internal/middleware"
	"github.com/mmynk/weekgoal/internal/money"
	"github.com/mmynk/weekgoal/internal/session"
	"github.com/mmynk/weekgoal/internal/weekkey"
	"github.com/mmynk/weekgoal/pkg/api"
)

// maxWeekOffset bounds SelectWeek navigation to roughly ten years either way.
const maxWeekOffset = 520

// WeekService implements the WeekService RPC interface on top of the
// per-user sessions of a session.Registry.
type WeekService struct {
	sessions *session.Registry
	logger   *slog.Logger
}

// NewWeekService creates a new week service.
func NewWeekService(sessions *session.Registry, logger *slog.Logger) *WeekService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeekService{sessions: sessions, logger: logger}
}

// SelectWeek makes a week current, loading it from storage.
func (s *WeekService) SelectWeek(ctx context.Context, req *connect.Request[api.SelectWeekRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Offset > maxWeekOffset || req.Msg.Offset < -maxWeekOffset {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("offset %d out of range", req.Msg.Offset))
	}

	var key weekkey.Key
	if req.Msg.Week != "" {
		key, err = weekkey.Parse(req.Msg.Week)
		if err != nil {
			s.logger.Warn("Invalid week key", "user_id", sess.UserID(), "week", req.Msg.Week)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	} else {
		key = sess.Current(ctx).Week
	}

	key, err = shift(key, req.Msg.Offset)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.logger.Info("SelectWeek request", "user_id", sess.UserID(), "week", key)
	return weekResponse(sess.SelectWeek(ctx, key)), nil
}

// GetWeek returns the selected week, selecting the current week if none is.
func (s *WeekService) GetWeek(ctx context.Context, req *connect.Request[api.GetWeekRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return weekResponse(sess.Current(ctx)), nil
}

// SetWeeklyGoal replaces the weekly goal and reallocates every day.
func (s *WeekService) SetWeeklyGoal(ctx context.Context, req *connect.Request[api.SetWeeklyGoalRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, week, err := s.sessionForWeek(ctx, req.Msg.Week)
	if err != nil {
		return nil, err
	}
	if err := finite(req.Msg.Goal); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.logger.Info("SetWeeklyGoal request", "user_id", sess.UserID(), "goal", req.Msg.Goal)
	res, err := sess.SetWeeklyGoal(ctx, week, money.FromFloat(req.Msg.Goal))
	return s.respond(sess, res, err)
}

// SetCoefficient shifts one day's coefficient and reallocates every day.
func (s *WeekService) SetCoefficient(ctx context.Context, req *connect.Request[api.SetCoefficientRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, week, err := s.sessionForWeek(ctx, req.Msg.Week)
	if err != nil {
		return nil, err
	}
	if err := finite(req.Msg.Delta); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.logger.Info("SetCoefficient request", "user_id", sess.UserID(), "day", req.Msg.Day, "delta", req.Msg.Delta)
	res, err := sess.SetCoefficient(ctx, week, req.Msg.Day, req.Msg.Delta)
	return s.respond(sess, res, err)
}

// SetActual records one day's earnings and reallocates the later days.
func (s *WeekService) SetActual(ctx context.Context, req *connect.Request[api.SetActualRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, week, err := s.sessionForWeek(ctx, req.Msg.Week)
	if err != nil {
		return nil, err
	}
	if err := finite(req.Msg.Amount); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	s.logger.Info("SetActual request", "user_id", sess.UserID(), "day", req.Msg.Day, "amount", req.Msg.Amount)
	res, err := sess.SetActual(ctx, week, req.Msg.Day, money.FromFloat(req.Msg.Amount))
	return s.respond(sess, res, err)
}

// ClearActual resets one day's earnings to zero.
func (s *WeekService) ClearActual(ctx context.Context, req *connect.Request[api.ClearActualRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, week, err := s.sessionForWeek(ctx, req.Msg.Week)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ClearActual request", "user_id", sess.UserID(), "day", req.Msg.Day)
	res, err := sess.ClearActual(ctx, week, req.Msg.Day)
	return s.respond(sess, res, err)
}

// SaveWeek writes the goal and all seven days of the selected week.
func (s *WeekService) SaveWeek(ctx context.Context, req *connect.Request[api.SaveWeekRequest]) (*connect.Response[api.WeekResponse], error) {
	sess, week, err := s.sessionForWeek(ctx, req.Msg.Week)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SaveWeek request", "user_id", sess.UserID())
	res, err := sess.Save(ctx, week)
	return s.respond(sess, res, err)
}

func (s *WeekService) session(ctx context.Context) (*session.Session, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	sess, err := s.sessions.Get(userID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return sess, nil
}

// sessionForWeek returns the caller's session and the parsed week the
// request names, empty when it names none. The session selects the week
// under its own lock as part of the mutation.
func (s *WeekService) sessionForWeek(ctx context.Context, week string) (*session.Session, weekkey.Key, error) {
	sess, err := s.session(ctx)
	if err != nil || week == "" {
		return sess, "", err
	}

	key, err := weekkey.Parse(week)
	if err != nil {
		s.logger.Warn("Invalid week key", "user_id", sess.UserID(), "week", week)
		return nil, "", connect.NewError(connect.CodeInvalidArgument, err)
	}
	return sess, key, nil
}

func (s *WeekService) respond(sess *session.Session, res session.Result, err error) (*connect.Response[api.WeekResponse], error) {
	switch {
	case err == nil:
		return weekResponse(res), nil
	case errors.Is(err, calculator.ErrDayOutOfRange):
		s.logger.Warn("Day out of range", "user_id", sess.UserID(), "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, session.ErrNoWeek):
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, session.ErrWeekUnavailable):
		return nil, connect.NewError(connect.CodeUnavailable, err)
	default:
		s.logger.Error("Week operation failed", "user_id", sess.UserID(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
}

func shift(key weekkey.Key, offset int) (weekkey.Key, error) {
	var err error
	for ; offset > 0 && err == nil; offset-- {
		key, err = key.Next()
	}
	for ; offset < 0 && err == nil; offset++ {
		key, err = key.Prev()
	}
	return key, err
}

func finite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%v is not a number", v)
	}
	return nil
}
