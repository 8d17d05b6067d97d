package database

import (
	"database/sql"
	"fmt"
	"time"

	"mandry/internal/models"
)

// checkPackingItemOwnership mirrors the activity guard: trip owner must be
// the caller and the item must belong to the trip from the request path.
func checkPackingItemOwnership(db *sql.DB, userID, tripID, itemID int) error {
	var ownerID, itemTripID int
	err := db.QueryRow(`
		SELECT t.user_id, p.trip_id
		FROM trips t
		INNER JOIN packing_items p ON t.id = p.trip_id
		WHERE p.id = ?
	`, itemID).Scan(&ownerID, &itemTripID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("packing item: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to check packing item ownership: %w", err)
	}

	if ownerID != userID || itemTripID != tripID {
		return fmt.Errorf("packing item %d: %w", itemID, ErrUnauthorized)
	}

	return nil
}

// GetPackingItems returns a trip's packing items in insertion order.
func GetPackingItems(db *sql.DB, tripID int) ([]models.PackingItem, error) {
	query := `
		SELECT id, trip_id, name, category, quantity, packed, created_at
		FROM packing_items
		WHERE trip_id = ?
		ORDER BY id ASC
	`

	rows, err := db.Query(query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query packing items: %w", err)
	}
	defer rows.Close()

	var items []models.PackingItem
	for rows.Next() {
		var item models.PackingItem
		err := rows.Scan(
			&item.ID, &item.TripID, &item.Name, &item.Category,
			&item.Quantity, &item.Packed, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan packing item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// CreatePackingItem adds an item to the trip's packing list.
func CreatePackingItem(db *sql.DB, userID, tripID int, item models.PackingItem) (*models.PackingItem, error) {
	if err := checkTripOwnership(db, userID, tripID); err != nil {
		return nil, err
	}

	if item.Quantity < 1 {
		return nil, fmt.Errorf("quantity below one: %w", ErrValidation)
	}

	query := `
		INSERT INTO packing_items (trip_id, name, category, quantity, packed)
		VALUES (?, ?, ?, ?, ?)
	`

	category := models.NormalizePackingCategory(item.Category)

	result, err := db.Exec(query, tripID, item.Name, category, item.Quantity, item.Packed)
	if err != nil {
		return nil, fmt.Errorf("failed to create packing item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get packing item ID: %w", err)
	}

	updateTripTimestamp(db, tripID)

	item.ID = int(id)
	item.TripID = tripID
	item.Category = category
	item.CreatedAt = time.Now()

	return &item, nil
}

// TogglePackingItem flips the packed flag.
func TogglePackingItem(db *sql.DB, userID, tripID, itemID int) error {
	if err := checkPackingItemOwnership(db, userID, tripID, itemID); err != nil {
		return err
	}

	query := `UPDATE packing_items SET packed = NOT packed WHERE id = ?`

	result, err := db.Exec(query, itemID)
	if err != nil {
		return fmt.Errorf("failed to toggle packing item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("packing item: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}

// DeletePackingItem deletes a packing item.
func DeletePackingItem(db *sql.DB, userID, tripID, itemID int) error {
	if err := checkPackingItemOwnership(db, userID, tripID, itemID); err != nil {
		return err
	}

	query := `DELETE FROM packing_items WHERE id = ?`

	result, err := db.Exec(query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete packing item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("packing item: %w", ErrNotFound)
	}

	updateTripTimestamp(db, tripID)

	return nil
}
