package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

// EnsureProfile creates the profile row if it does not exist yet. Callers on
// both the signup path and the dashboard read path go through this, so a user
// can never end up without a profile.
func (r *ProfileRepository) EnsureProfile(ctx context.Context, userID int) error {
	query := `INSERT IGNORE INTO profiles (user_id) VALUES (?)`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int) (models.Profile, error) {
	var profile models.Profile
	query := `SELECT user_id, profile_picture FROM profiles WHERE user_id = ?`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&profile.UserID, &profile.ProfilePicture)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return models.Profile{}, err
	}
	if profile.ProfilePicture != nil && *profile.ProfilePicture == "" {
		profile.ProfilePicture = nil
	}
	return profile, nil
}

func (r *ProfileRepository) UpdatePicture(ctx context.Context, userID int, pictureURL string) error {
	query := `UPDATE profiles SET profile_picture = ? WHERE user_id = ?`
	_, err := r.DB.ExecContext(ctx, query, pictureURL, userID)
	return err
}
