package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/money"
	"github.com/mmynk/weekgoal/internal/weekkey"
)

// LoadWeek retrieves the goal and stored days of a week.
func (s *SQLiteStore) LoadWeek(ctx context.Context, userID string, week weekkey.Key) (*models.WeekRecord, error) {
	record := &models.WeekRecord{}
	found := false

	var goal int64
	err := s.db.QueryRowContext(ctx,
		"SELECT goal_cents FROM weekly_goals WHERE user_id = ? AND week = ?",
		userID, week.String(),
	).Scan(&goal)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to get weekly goal: %w", err)
	default:
		amount := money.Amount(goal)
		record.Goal = &amount
		found = true
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, target, actual_cents, coefficient
		FROM daily_data
		WHERE user_id = ? AND week = ?
		ORDER BY date`,
		userID, week.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily data: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			date        string
			target      int64
			actual      int64
			coefficient int
		)
		if err := rows.Scan(&date, &target, &actual, &coefficient); err != nil {
			return nil, fmt.Errorf("failed to scan daily data: %w", err)
		}
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", date, err)
		}
		i := weekkey.DayIndex(t)
		record.Days = append(record.Days, models.DayRecord{
			Index: i,
			Day: models.Day{
				Name:        models.DayNames[i],
				Coefficient: models.Coefficient(coefficient).Clamp(),
				Target:      target,
				Actual:      money.Amount(actual).NonNegative(),
			},
		})
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily data: %w", err)
	}

	if !found {
		return nil, nil
	}
	return record, nil
}

// SaveGoal upserts the weekly goal.
func (s *SQLiteStore) SaveGoal(ctx context.Context, userID string, week weekkey.Key, goal money.Amount) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weekly_goals (user_id, week, goal_cents, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, week) DO UPDATE SET
			goal_cents = excluded.goal_cents,
			updated_at = excluded.updated_at`,
		userID, week.String(), int64(goal), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save weekly goal: %w", err)
	}
	return nil
}

// SaveDay upserts the record of the day falling on date.
func (s *SQLiteStore) SaveDay(ctx context.Context, userID string, date time.Time, day models.Day) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_data (user_id, date, week, target, actual_cents, coefficient, is_target_reached, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			week = excluded.week,
			target = excluded.target,
			actual_cents = excluded.actual_cents,
			coefficient = excluded.coefficient,
			is_target_reached = excluded.is_target_reached,
			updated_at = excluded.updated_at`,
		userID,
		date.Format(dateLayout),
		weekkey.FromDate(date).String(),
		day.Target,
		int64(day.Actual),
		int(day.Coefficient),
		day.TargetReached(),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save daily data: %w", err)
	}
	return nil
}
