package database

import (
	"database/sql"
	"fmt"
	"time"

	"mandry/internal/models"
)

func checkAccommodationOwnership(db *sql.DB, userID, tripID, accommodationID int) error {
	var ownerID, accTripID int
	err := db.QueryRow(`
		SELECT t.user_id, a.trip_id
		FROM trips t
		INNER JOIN accommodations a ON t.id = a.trip_id
		WHERE a.id = ?
	`, accommodationID).Scan(&ownerID, &accTripID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("accommodation: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to check accommodation ownership: %w", err)
	}

	if ownerID != userID || accTripID != tripID {
		return fmt.Errorf("accommodation %d: %w", accommodationID, ErrUnauthorized)
	}

	return nil
}

// GetAccommodations returns a trip's accommodations in insertion order.
func GetAccommodations(db *sql.DB, tripID int) ([]models.Accommodation, error) {
	query := `
		SELECT id, trip_id, name, COALESCE(address, ''), check_in, check_out,
		       price_per_night, total_price,
		       COALESCE(booking_ref, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(website, ''), COALESCE(notes, ''), rating,
		       COALESCE(amenities, ''), COALESCE(image_url, ''), booking_status,
		       created_at
		FROM accommodations
		WHERE trip_id = ?
		ORDER BY id ASC
	`

	rows, err := db.Query(query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accommodations: %w", err)
	}
	defer rows.Close()

	var accommodations []models.Accommodation
	for rows.Next() {
		var acc models.Accommodation
		err := rows.Scan(
			&acc.ID, &acc.TripID, &acc.Name, &acc.Address, &acc.CheckIn, &acc.CheckOut,
			&acc.PricePerNight, &acc.TotalPrice,
			&acc.BookingRef, &acc.Phone, &acc.Email,
			&acc.Website, &acc.Notes, &acc.Rating,
			&acc.Amenities, &acc.ImageURL, &acc.BookingStatus,
			&acc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accommodation: %w", err)
		}

		accommodations = append(accommodations, acc)
	}

	return accommodations, rows.Err()
}

// GetAccommodation returns a single accommodation, enforcing the two-hop guard.
func GetAccommodation(db *sql.DB, userID, tripID, accommodationID int) (*models.Accommodation, error) {
	if err := checkAccommodationOwnership(db, userID, tripID, accommodationID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, trip_id, name, COALESCE(address, ''), check_in, check_out,
		       price_per_night, total_price,
		       COALESCE(booking_ref, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(website, ''), COALESCE(notes, ''), rating,
		       COALESCE(amenities, ''), COALESCE(image_url, ''), booking_status,
		       created_at
		FROM accommodations
		WHERE id = ?
	`

	var acc models.Accommodation
	err := db.QueryRow(query, accommodationID).Scan(
		&acc.ID, &acc.TripID, &acc.Name, &acc.Address, &acc.CheckIn, &acc.CheckOut,
		&acc.PricePerNight, &acc.TotalPrice,
		&acc.BookingRef, &acc.Phone, &acc.Email,
		&acc.Website, &acc.Notes, &acc.Rating,
		&acc.Amenities, &acc.ImageURL, &acc.BookingStatus,
		&acc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("accommodation: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get accommodation: %w", err)
	}

	return &acc, nil
}

// CreateAccommodation persists a booking. The total price is always derived
// from nights and the nightly rate; a caller-supplied total is overwritten.
func CreateAccommodation(db *sql.DB, userID, tripID int, acc models.Accommodation) (*models.Accommodation, error) {
	if err := checkTripOwnership(db, userID, tripID); err != nil {
		return nil, err
	}

	if !acc.CheckOut.After(acc.CheckIn) {
		return nil, fmt.Errorf("check-out not after check-in: %w", ErrValidation)
	}

	acc.TotalPrice = acc.PricePerNight * float64(models.Nights(acc.CheckIn, acc.CheckOut))

	if acc.BookingStatus == "" {
		acc.BookingStatus = "pending"
	}

	query := `
		INSERT INTO accommodations (trip_id, name, address, check_in, check_out,
			price_per_night, total_price, booking_ref, phone, email, website,
			notes, rating, amenities, image_url, booking_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, tripID, acc.Name, acc.Address, acc.CheckIn, acc.CheckOut,
		acc.PricePerNight, acc.TotalPrice, acc.BookingRef, acc.Phone, acc.Email, acc.Website,
		acc.Notes, acc.Rating, acc.Amenities, acc.ImageURL, acc.BookingStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to create accommodation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get accommodation ID: %w", err)
	}

	updateTripTimestamp(db, tripID)

	acc.ID = int(id)
	acc.TripID = tripID
	acc.CreatedAt = time.Now()

	return &acc, nil
}

// UpdateAccommodation updates a booking, recomputing the derived total.
func UpdateAccommodation(db *sql.DB, userID, tripID, accommodationID int, acc models.Accommodation) error {
	if err := checkAccommodationOwnership(db, userID, tripID, accommodationID); err != nil {
		return err
	}

	if !acc.CheckOut.After(acc.CheckIn) {
		return fmt.Errorf("check-out not after check-in: %w", ErrValidation)
	}

	acc.TotalPrice = acc.PricePerNight * float64(models.Nights(acc.CheckIn, acc.CheckOut))

	if acc.BookingStatus == "" {
		acc.BookingStatus = "pending"
	}

	query := `
		UPDATE accommodations
		SET name = ?, address = ?, check_in = ?, check_out = ?,
		    price_per_night = ?, total_price = ?, booking_ref = ?, phone = ?,
		    email = ?, website = ?, notes = ?, rating = ?, amenities = ?,
		    image_url = ?, booking_status = ?
		WHERE id = ? AND trip_id = ?
	`

	result, err := db.Exec(query, acc.Name, acc.Address, acc.CheckIn, acc.CheckOut,
		acc.PricePerNight, acc.TotalPrice, acc.BookingRef, acc.Phone,
		acc.Email, acc.Website, acc.Notes, acc.Rating, acc.Amenities,
		acc.ImageURL, acc.BookingStatus, accommodationID, tripID)
	if err != nil {
		return fmt.Errorf("failed to update accommodation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("accommodation: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}

// DeleteAccommodation deletes a booking.
func DeleteAccommodation(db *sql.DB, userID, tripID, accommodationID int) error {
	if err := checkAccommodationOwnership(db, userID, tripID, accommodationID); err != nil {
		return err
	}

	query := `DELETE FROM accommodations WHERE id = ?`

	result, err := db.Exec(query, accommodationID)
	if err != nil {
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("accommodation: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}
