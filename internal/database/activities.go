package database

import (
	"database/sql"
	"fmt"
	"time"

	"mandry/internal/models"
)

// checkActivityOwnership verifies both hops: the caller owns the trip the
// activity belongs to, and the activity's trip matches the trip from the
// request path. An activity ID belonging to another trip is rejected even
// when the caller owns both trips.
func checkActivityOwnership(db *sql.DB, userID, tripID, activityID int) error {
	var ownerID, actTripID int
	err := db.QueryRow(`
		SELECT t.user_id, a.trip_id
		FROM trips t
		INNER JOIN activities a ON t.id = a.trip_id
		WHERE a.id = ?
	`, activityID).Scan(&ownerID, &actTripID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to check activity ownership: %w", err)
	}

	if ownerID != userID || actTripID != tripID {
		return fmt.Errorf("activity %d: %w", activityID, ErrUnauthorized)
	}

	return nil
}

// validateActivityDate checks the date against the trip span by calendar
// day, ignoring time of day. A span that later shrinks does not
// retro-invalidate existing rows.
func validateActivityDate(db *sql.DB, tripID int, date time.Time) error {
	var startDate, endDate time.Time
	err := db.QueryRow("SELECT start_date, end_date FROM trips WHERE id = ?", tripID).Scan(&startDate, &endDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("trip: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get trip dates: %w", err)
	}

	day := toCalendarDay(date)
	if day.Before(toCalendarDay(startDate)) || day.After(toCalendarDay(endDate)) {
		return fmt.Errorf("activity date outside trip dates: %w", ErrValidation)
	}

	return nil
}

func toCalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetActivities returns a trip's activities in insertion order.
func GetActivities(db *sql.DB, tripID int) ([]models.Activity, error) {
	query := `
		SELECT id, trip_id, title, COALESCE(description, ''), date,
		       COALESCE(time_of_day, ''), COALESCE(location, ''),
		       cost, category, completed, created_at
		FROM activities
		WHERE trip_id = ?
		ORDER BY id ASC
	`

	rows, err := db.Query(query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var activity models.Activity
		err := rows.Scan(
			&activity.ID, &activity.TripID, &activity.Title, &activity.Description,
			&activity.Date, &activity.TimeOfDay, &activity.Location,
			&activity.Cost, &activity.Category, &activity.Completed,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// GetActivity returns a single activity, enforcing the two-hop guard.
func GetActivity(db *sql.DB, userID, tripID, activityID int) (*models.Activity, error) {
	if err := checkActivityOwnership(db, userID, tripID, activityID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, trip_id, title, COALESCE(description, ''), date,
		       COALESCE(time_of_day, ''), COALESCE(location, ''),
		       cost, category, completed, created_at
		FROM activities
		WHERE id = ?
	`

	var activity models.Activity
	err := db.QueryRow(query, activityID).Scan(
		&activity.ID, &activity.TripID, &activity.Title, &activity.Description,
		&activity.Date, &activity.TimeOfDay, &activity.Location,
		&activity.Cost, &activity.Category, &activity.Completed,
		&activity.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return &activity, nil
}

// CreateActivity persists a new activity after the ownership and date-span
// checks pass. The category is bucketed into the closed set.
func CreateActivity(db *sql.DB, userID, tripID int, activity models.Activity) (*models.Activity, error) {
	if err := checkTripOwnership(db, userID, tripID); err != nil {
		return nil, err
	}

	if err := validateActivityDate(db, tripID, activity.Date); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO activities (trip_id, title, description, date, time_of_day, location, cost, category, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	category := models.NormalizeActivityCategory(activity.Category)

	result, err := db.Exec(query, tripID, activity.Title, activity.Description,
		activity.Date, activity.TimeOfDay, activity.Location,
		activity.Cost, category, activity.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity ID: %w", err)
	}

	updateTripTimestamp(db, tripID)

	activity.ID = int(id)
	activity.TripID = tripID
	activity.Category = category
	activity.CreatedAt = time.Now()

	return &activity, nil
}

// UpdateActivity updates an activity after re-running the same checks as
// creation. A rejected update leaves the stored row untouched.
func UpdateActivity(db *sql.DB, userID, tripID, activityID int, activity models.Activity) error {
	if err := checkActivityOwnership(db, userID, tripID, activityID); err != nil {
		return err
	}

	if err := validateActivityDate(db, tripID, activity.Date); err != nil {
		return err
	}

	query := `
		UPDATE activities
		SET title = ?, description = ?, date = ?, time_of_day = ?, location = ?, cost = ?, category = ?
		WHERE id = ? AND trip_id = ?
	`

	category := models.NormalizeActivityCategory(activity.Category)

	result, err := db.Exec(query, activity.Title, activity.Description,
		activity.Date, activity.TimeOfDay, activity.Location,
		activity.Cost, category, activityID, tripID)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("activity: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}

// ToggleActivity flips the completed flag.
func ToggleActivity(db *sql.DB, userID, tripID, activityID int) error {
	if err := checkActivityOwnership(db, userID, tripID, activityID); err != nil {
		return err
	}

	query := `UPDATE activities SET completed = NOT completed WHERE id = ?`

	result, err := db.Exec(query, activityID)
	if err != nil {
		return fmt.Errorf("failed to toggle activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("activity: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}

// DeleteActivity deletes an activity.
func DeleteActivity(db *sql.DB, userID, tripID, activityID int) error {
	if err := checkActivityOwnership(db, userID, tripID, activityID); err != nil {
		return err
	}

	query := `DELETE FROM activities WHERE id = ?`

	result, err := db.Exec(query, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("activity: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}
