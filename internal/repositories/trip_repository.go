package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r *TripRepository) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	query := `
		INSERT INTO trips (user_id, destination, start_date, duration_days, budget_type,
		                   budget_amount, share_uuid, description, interests, itinerary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		trip.UserID, trip.Destination, trip.StartDate, trip.DurationDays, trip.BudgetType,
		trip.BudgetAmount, trip.ShareUUID, trip.Description, trip.Interests, trip.Itinerary,
	)
	if err != nil {
		return models.Trip{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Trip{}, err
	}
	trip.ID = int(id)
	return trip, nil
}

func (r *TripRepository) GetTripsByUser(ctx context.Context, filter models.TripFilter) ([]models.Trip, error) {
	query := `
		SELECT id, user_id, destination, start_date, duration_days, budget_type,
		       budget_amount, share_uuid, description, interests, cover_image,
		       is_favorite, itinerary, created_at
		FROM trips
		WHERE user_id = ?
	`
	args := []interface{}{filter.UserID}
	if filter.Search != "" {
		query += ` AND destination LIKE ?`
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.BudgetType != "" {
		query += ` AND budget_type = ?`
		args = append(args, filter.BudgetType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func (r *TripRepository) GetTripByID(ctx context.Context, id, userID int) (models.Trip, error) {
	query := `
		SELECT id, user_id, destination, start_date, duration_days, budget_type,
		       budget_amount, share_uuid, description, interests, cover_image,
		       is_favorite, itinerary, created_at
		FROM trips
		WHERE id = ? AND user_id = ?
	`
	row := r.DB.QueryRowContext(ctx, query, id, userID)
	trip, err := scanTripRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, models.ErrTripNotFound
	}
	return trip, err
}

func (r *TripRepository) GetTripByShareUUID(ctx context.Context, shareUUID string) (models.Trip, error) {
	query := `
		SELECT id, user_id, destination, start_date, duration_days, budget_type,
		       budget_amount, share_uuid, description, interests, cover_image,
		       is_favorite, itinerary, created_at
		FROM trips
		WHERE share_uuid = ?
	`
	row := r.DB.QueryRowContext(ctx, query, shareUUID)
	trip, err := scanTripRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, models.ErrTripNotFound
	}
	return trip, err
}

func (r *TripRepository) DeleteTrip(ctx context.Context, id, userID int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM trips WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrTripNotFound
	}
	return nil
}

// ToggleFavorite flips the flag and returns the new state.
func (r *TripRepository) ToggleFavorite(ctx context.Context, id, userID int) (bool, error) {
	trip, err := r.GetTripByID(ctx, id, userID)
	if err != nil {
		return false, err
	}
	newState := !trip.IsFavorite
	_, err = r.DB.ExecContext(ctx, `UPDATE trips SET is_favorite = ? WHERE id = ? AND user_id = ?`,
		newState, id, userID)
	if err != nil {
		return false, err
	}
	return newState, nil
}

func (r *TripRepository) CountFavorites(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trips WHERE user_id = ? AND is_favorite = TRUE`, userID).Scan(&count)
	return count, err
}

func (r *TripRepository) UpdateCoverImage(ctx context.Context, id, userID int, url string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE trips SET cover_image = ? WHERE id = ? AND user_id = ?`, url, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrTripNotFound
	}
	return nil
}

// GetStats aggregates the dashboard numbers over the filtered trip set.
func (r *TripRepository) GetStats(ctx context.Context, filter models.TripFilter) (models.TripStats, error) {
	stats := models.TripStats{TopDestination: "No trips yet"}

	query := `
		SELECT COALESCE(SUM(budget_amount), 0),
		       COALESCE(SUM(is_favorite = TRUE), 0)
		FROM trips
		WHERE user_id = ?
	`
	args := []interface{}{filter.UserID}
	if filter.Search != "" {
		query += ` AND destination LIKE ?`
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.BudgetType != "" {
		query += ` AND budget_type = ?`
		args = append(args, filter.BudgetType)
	}
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&stats.TotalBudget, &stats.FavoritesCount); err != nil {
		return stats, err
	}

	topQuery := `
		SELECT destination
		FROM trips
		WHERE user_id = ?
		GROUP BY destination
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`
	var top string
	err := r.DB.QueryRowContext(ctx, topQuery, filter.UserID).Scan(&top)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, err
	}
	if top != "" {
		stats.TopDestination = top
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(rows *sql.Rows) (models.Trip, error) {
	return scanTripRow(rows)
}

func scanTripRow(row rowScanner) (models.Trip, error) {
	var trip models.Trip
	var itinerary sql.NullString
	err := row.Scan(
		&trip.ID, &trip.UserID, &trip.Destination, &trip.StartDate, &trip.DurationDays,
		&trip.BudgetType, &trip.BudgetAmount, &trip.ShareUUID, &trip.Description,
		&trip.Interests, &trip.CoverImage, &trip.IsFavorite, &itinerary, &trip.CreatedAt,
	)
	if err != nil {
		return models.Trip{}, err
	}
	trip.Itinerary = itinerary.String
	if trip.CoverImage != nil && *trip.CoverImage == "" {
		trip.CoverImage = nil
	}
	return trip, nil
}
