package database

import (
	"database/sql"
	"fmt"
	"time"

	"mandry/internal/logger"
	"mandry/internal/models"
)

func updateTripTimestamp(db *sql.DB, tripID int) error {
	query := `UPDATE trips SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := db.Exec(query, tripID)
	return err
}

// checkTripOwnership resolves a trip's owner and compares it to the caller.
// Every trip-scoped read and write goes through this before touching rows.
func checkTripOwnership(db *sql.DB, userID, tripID int) error {
	var ownerID int
	err := db.QueryRow("SELECT user_id FROM trips WHERE id = ?", tripID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("trip: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to check trip ownership: %w", err)
	}

	if ownerID != userID {
		return fmt.Errorf("trip %d: %w", tripID, ErrUnauthorized)
	}

	return nil
}

// CreateTrip creates a new trip after validating its date span and budget.
func CreateTrip(db *sql.DB, userID int, title, destination string, startDate, endDate time.Time, budget float64) (*models.Trip, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date before start date: %w", ErrValidation)
	}
	if budget < 0 {
		return nil, fmt.Errorf("negative budget: %w", ErrValidation)
	}

	query := `
		INSERT INTO trips (user_id, title, destination, start_date, end_date, budget)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, userID, title, destination, startDate, endDate, budget)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get trip ID: %w", err)
	}

	trip := &models.Trip{
		ID:          int(id),
		UserID:      userID,
		Title:       title,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      budget,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return trip, nil
}

// GetTrips returns all trips for a user, newest first.
func GetTrips(db *sql.DB, userID int) ([]models.Trip, error) {
	query := `
		SELECT id, user_id, title, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		WHERE user_id = ?
		ORDER BY start_date DESC, created_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		err := rows.Scan(
			&trip.ID, &trip.UserID, &trip.Title, &trip.Destination,
			&trip.StartDate, &trip.EndDate, &trip.Budget,
			&trip.CreatedAt, &trip.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}

		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// GetTrip returns a single trip by ID, enforcing ownership.
func GetTrip(db *sql.DB, userID, tripID int) (*models.Trip, error) {
	query := `
		SELECT id, user_id, title, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		WHERE id = ?
	`

	var trip models.Trip
	err := db.QueryRow(query, tripID).Scan(
		&trip.ID, &trip.UserID, &trip.Title, &trip.Destination,
		&trip.StartDate, &trip.EndDate, &trip.Budget,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trip: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if trip.UserID != userID {
		return nil, fmt.Errorf("trip %d: %w", tripID, ErrUnauthorized)
	}

	return &trip, nil
}

// GetTripWithDetails returns a trip with all related data loaded.
func GetTripWithDetails(db *sql.DB, userID, tripID int) (*models.Trip, error) {
	trip, err := GetTrip(db, userID, tripID)
	if err != nil {
		return nil, err
	}

	activities, err := GetActivities(db, tripID)
	if err != nil {
		logger.Error("Failed to load activities", "trip_id", tripID, "error", err)
	} else {
		trip.Activities = activities
	}

	packingItems, err := GetPackingItems(db, tripID)
	if err != nil {
		logger.Error("Failed to load packing items", "trip_id", tripID, "error", err)
	} else {
		trip.PackingItems = packingItems
	}

	accommodations, err := GetAccommodations(db, tripID)
	if err != nil {
		logger.Error("Failed to load accommodations", "trip_id", tripID, "error", err)
	} else {
		trip.Accommodations = accommodations
	}

	return trip, nil
}

// UpdateTrip updates a trip's fields after validating the new values.
func UpdateTrip(db *sql.DB, userID, tripID int, title, destination string, startDate, endDate time.Time, budget float64) error {
	if endDate.Before(startDate) {
		return fmt.Errorf("end date before start date: %w", ErrValidation)
	}
	if budget < 0 {
		return fmt.Errorf("negative budget: %w", ErrValidation)
	}

	if err := checkTripOwnership(db, userID, tripID); err != nil {
		return err
	}

	query := `
		UPDATE trips
		SET title = ?, destination = ?, start_date = ?, end_date = ?, budget = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`

	result, err := db.Exec(query, title, destination, startDate, endDate, budget, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("trip: %w", ErrNotFound)
	}

	return nil
}

// DeleteTrip deletes a trip and all of its dependents in one transaction.
// Children are removed before the parent so no orphan rows remain.
func DeleteTrip(db *sql.DB, userID, tripID int) error {
	if err := checkTripOwnership(db, userID, tripID); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	childQueries := []string{
		`DELETE FROM activities WHERE trip_id = ?`,
		`DELETE FROM packing_items WHERE trip_id = ?`,
		`DELETE FROM accommodations WHERE trip_id = ?`,
	}

	for _, q := range childQueries {
		if _, err := tx.Exec(q, tripID); err != nil {
			return fmt.Errorf("failed to delete trip dependents: %w", err)
		}
	}

	result, err := tx.Exec(`DELETE FROM trips WHERE id = ? AND user_id = ?`, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("trip: %w", ErrNotFound)
	}

	return tx.Commit()
}
