package database

import (
	"database/sql"
	"fmt"
	"time"
)

type UserStats struct {
	TotalTrips          int     `json:"total_trips"`
	TotalActivities     int     `json:"total_activities"`
	CompletedActivities int     `json:"completed_activities"`
	ActivitySpend       float64 `json:"activity_spend"`
	AccommodationSpend  float64 `json:"accommodation_spend"`
	TotalSpend          float64 `json:"total_spend"`
}

type UpcomingTrip struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Budget      float64   `json:"budget"`
	Spent       float64   `json:"spent"`
}

// GetUserStats aggregates profile-level totals across all of a user's trips.
func GetUserStats(db *sql.DB, userID int) (*UserStats, error) {
	stats := &UserStats{}

	err := db.QueryRow("SELECT COUNT(*) FROM trips WHERE user_id = ?", userID).Scan(&stats.TotalTrips)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip count: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN a.completed THEN 1 ELSE 0 END), 0), COALESCE(SUM(a.cost), 0)
		FROM activities a
		INNER JOIN trips t ON a.trip_id = t.id
		WHERE t.user_id = ?
	`, userID).Scan(&stats.TotalActivities, &stats.CompletedActivities, &stats.ActivitySpend)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity totals: %w", err)
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(a.total_price), 0)
		FROM accommodations a
		INNER JOIN trips t ON a.trip_id = t.id
		WHERE t.user_id = ?
	`, userID).Scan(&stats.AccommodationSpend)
	if err != nil {
		return nil, fmt.Errorf("failed to get accommodation totals: %w", err)
	}

	stats.TotalSpend = stats.ActivitySpend + stats.AccommodationSpend

	return stats, nil
}

// GetUpcomingTrips returns trips that have not ended yet, soonest first,
// with per-trip spend summed from both cost sources.
func GetUpcomingTrips(db *sql.DB, userID int, limit int) ([]UpcomingTrip, error) {
	query := `
		SELECT t.id, t.title, t.destination, t.start_date, t.end_date, t.budget,
		       COALESCE((SELECT SUM(cost) FROM activities WHERE trip_id = t.id), 0) +
		       COALESCE((SELECT SUM(total_price) FROM accommodations WHERE trip_id = t.id), 0) AS spent
		FROM trips t
		WHERE t.user_id = ? AND t.end_date >= ?
		ORDER BY t.start_date ASC
		LIMIT ?
	`

	rows, err := db.Query(query, userID, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming trips: %w", err)
	}
	defer rows.Close()

	var trips []UpcomingTrip
	for rows.Next() {
		var trip UpcomingTrip
		err := rows.Scan(
			&trip.ID, &trip.Title, &trip.Destination,
			&trip.StartDate, &trip.EndDate, &trip.Budget, &trip.Spent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upcoming trip: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating upcoming trips: %w", err)
	}

	return trips, nil
}
