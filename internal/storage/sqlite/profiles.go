package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/weekgoal/internal/models"
)

// GetProfile returns the driver profile of userID, or nil when none was saved.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile := &models.Profile{}
	var platforms string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, first_name, last_name, vehicle_type, preferred_zone,
			years_of_experience, platforms, work_city, created_at, updated_at
		FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.VehicleType,
		&profile.PreferredZone,
		&profile.YearsOfExperience,
		&platforms,
		&profile.WorkCity,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if err := json.Unmarshal([]byte(platforms), &profile.Platforms); err != nil {
		return nil, fmt.Errorf("failed to decode platforms: %w", err)
	}
	return profile, nil
}

// SaveProfile upserts a profile. CreatedAt is kept from the first save.
func (s *SQLiteStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	platforms := profile.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	encoded, err := json.Marshal(platforms)
	if err != nil {
		return fmt.Errorf("failed to encode platforms: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, first_name, last_name, vehicle_type, preferred_zone,
			years_of_experience, platforms, work_city, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			vehicle_type = excluded.vehicle_type,
			preferred_zone = excluded.preferred_zone,
			years_of_experience = excluded.years_of_experience,
			platforms = excluded.platforms,
			work_city = excluded.work_city,
			updated_at = excluded.updated_at`,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.VehicleType,
		profile.PreferredZone,
		profile.YearsOfExperience,
		string(encoded),
		profile.WorkCity,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
