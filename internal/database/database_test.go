package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"mandry/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const testSessionDuration = 24 * time.Hour

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	return db
}

func createTestUser(t *testing.T, db *sql.DB, username, email string) *models.User {
	user, err := CreateUser(db, username, email, "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}
	return user
}

func createTestTrip(t *testing.T, db *sql.DB, userID int) *models.Trip {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	trip, err := CreateTrip(db, userID, "Львів на вихідні", "Львів", start, end, 1000)
	if err != nil {
		t.Fatal("Failed to create trip:", err)
	}
	return trip
}

func TestUserCreationAndAuthentication(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")

	if user.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got %s", user.Username)
	}

	if user.IsActivated {
		t.Error("New user should not be activated")
	}

	authUser, err := AuthenticateUser(db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to authenticate user:", err)
	}

	if authUser.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, authUser.ID)
	}

	_, err = AuthenticateUser(db, "test@example.com", "wrongpassword")
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Expected ErrUnauthorized for wrong password, got:", err)
	}

	_, err = AuthenticateUser(db, "nobody@example.com", "password123")
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected ErrNotFound for unknown email, got:", err)
	}
}

func TestSessionManagement(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")

	session, err := CreateSession(db, user.ID, testSessionDuration)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	if len(session.ID) == 0 {
		t.Error("Session ID should not be empty")
	}

	validatedUser, err := ValidateSession(db, session.ID, testSessionDuration)
	if err != nil {
		t.Fatal("Failed to validate session:", err)
	}

	if validatedUser.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, validatedUser.ID)
	}

	err = DeleteSession(db, session.ID)
	if err != nil {
		t.Fatal("Failed to delete session:", err)
	}

	_, err = ValidateSession(db, session.ID, testSessionDuration)
	if err == nil {
		t.Error("Expected session validation to fail after deletion")
	}
}

func TestActivationFlow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")

	token, err := CreateActivationToken(db, user.ID)
	if err != nil {
		t.Fatal("Failed to create activation token:", err)
	}

	tokenUser, err := ValidateActivationToken(db, token.Token)
	if err != nil {
		t.Fatal("Failed to validate activation token:", err)
	}
	if tokenUser.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, tokenUser.ID)
	}

	if err := ActivateUser(db, user.ID, token.Token); err != nil {
		t.Fatal("Failed to activate user:", err)
	}

	activated, err := GetUserByID(db, user.ID)
	if err != nil {
		t.Fatal("Failed to load user:", err)
	}
	if !activated.IsActivated {
		t.Error("User should be activated")
	}

	if _, err := ValidateActivationToken(db, token.Token); err == nil {
		t.Error("Activation token should be consumed after use")
	}
}

func TestCSRFTokenIsOneShot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")

	token, err := CreateCSRFToken(db, user.ID)
	if err != nil {
		t.Fatal("Failed to create CSRF token:", err)
	}

	if err := ValidateCSRFToken(db, token.Token, user.ID); err != nil {
		t.Fatal("First validation should succeed:", err)
	}

	if err := ValidateCSRFToken(db, token.Token, user.ID); err == nil {
		t.Error("Second validation should fail")
	}
}

func TestTripValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")

	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := CreateTrip(db, user.ID, "Назад у часі", "Київ", start, end, 100)
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation for end before start, got:", err)
	}

	_, err = CreateTrip(db, user.ID, "Мінус бюджет", "Київ", end, start, -5)
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation for negative budget, got:", err)
	}

	trips, err := GetTrips(db, user.ID)
	if err != nil {
		t.Fatal("Failed to list trips:", err)
	}
	if len(trips) != 0 {
		t.Errorf("Rejected trips must not be persisted, found %d", len(trips))
	}
}

func TestTripOwnership(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	owner := createTestUser(t, db, "owner", "owner@example.com")
	intruder := createTestUser(t, db, "intruder", "intruder@example.com")

	trip := createTestTrip(t, db, owner.ID)

	_, err := GetTrip(db, intruder.ID, trip.ID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Expected ErrUnauthorized for foreign trip, got:", err)
	}

	err = UpdateTrip(db, intruder.ID, trip.ID, "Захоплено", "Десь", trip.StartDate, trip.EndDate, 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Expected ErrUnauthorized on foreign update, got:", err)
	}

	err = DeleteTrip(db, intruder.ID, trip.ID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Expected ErrUnauthorized on foreign delete, got:", err)
	}

	kept, err := GetTrip(db, owner.ID, trip.ID)
	if err != nil {
		t.Fatal("Owner should still see the trip:", err)
	}
	if kept.Title != trip.Title {
		t.Error("Foreign update must not change the trip")
	}

	_, err = GetTrip(db, owner.ID, 99999)
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected ErrNotFound for missing trip, got:", err)
	}
}

func TestTwoHopOwnershipGuard(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	owner := createTestUser(t, db, "owner", "owner@example.com")
	intruder := createTestUser(t, db, "intruder", "intruder@example.com")

	trip := createTestTrip(t, db, owner.ID)
	otherTrip := createTestTrip(t, db, owner.ID)

	activity, err := CreateActivity(db, owner.ID, trip.ID, models.Activity{
		Title:    "Екскурсія",
		Date:     time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Cost:     50,
		Category: models.ActivityCategoryActivity,
	})
	if err != nil {
		t.Fatal("Failed to create activity:", err)
	}

	// Foreign caller, correct trip.
	if err := ToggleActivity(db, intruder.ID, trip.ID, activity.ID); !errors.Is(err, ErrUnauthorized) {
		t.Error("Expected ErrUnauthorized for foreign caller, got:", err)
	}

	// Owner, but wrong parent trip in the path.
	if err := ToggleActivity(db, owner.ID, otherTrip.ID, activity.ID); !errors.Is(err, ErrUnauthorized) {
		t.Error("Expected ErrUnauthorized for mismatched trip, got:", err)
	}

	if err := ToggleActivity(db, owner.ID, trip.ID, activity.ID); err != nil {
		t.Fatal("Owner toggle through the right trip should work:", err)
	}

	toggled, err := GetActivity(db, owner.ID, trip.ID, activity.ID)
	if err != nil {
		t.Fatal("Failed to reload activity:", err)
	}
	if !toggled.Completed {
		t.Error("Toggle should flip completed to true")
	}
}

func TestActivityDateMustBeInsideTripSpan(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	_, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Поза межами",
		Date:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation for date outside span, got:", err)
	}

	// Boundary days count as inside.
	first, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Перший день",
		Date:  trip.StartDate,
	})
	if err != nil {
		t.Fatal("Start-date activity should be accepted:", err)
	}
	if _, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Останній день",
		Date:  trip.EndDate,
	}); err != nil {
		t.Fatal("End-date activity should be accepted:", err)
	}

	// A rejected edit leaves the stored date untouched.
	err = UpdateActivity(db, user.ID, trip.ID, first.ID, models.Activity{
		Title: "Перший день",
		Date:  time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation on out-of-span edit, got:", err)
	}

	reloaded, err := GetActivity(db, user.ID, trip.ID, first.ID)
	if err != nil {
		t.Fatal("Failed to reload activity:", err)
	}
	if !reloaded.Date.Equal(trip.StartDate) {
		t.Errorf("Rejected edit must retain prior date, got %v", reloaded.Date)
	}
}

func TestActivityCategoryNormalization(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	activity, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title:    "Щось дивне",
		Date:     trip.StartDate,
		Category: "space-travel",
	})
	if err != nil {
		t.Fatal("Failed to create activity:", err)
	}

	if activity.Category != models.ActivityCategoryGeneral {
		t.Errorf("Unknown category should normalize to general, got %s", activity.Category)
	}
}

func TestPackingItemRules(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	_, err := CreatePackingItem(db, user.ID, trip.ID, models.PackingItem{
		Name:     "Шкарпетки",
		Quantity: 0,
	})
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation for zero quantity, got:", err)
	}

	item, err := CreatePackingItem(db, user.ID, trip.ID, models.PackingItem{
		Name:     "Зарядка",
		Category: "gadgets",
		Quantity: 1,
	})
	if err != nil {
		t.Fatal("Failed to create packing item:", err)
	}
	if item.Category != models.PackingCategoryOther {
		t.Errorf("Unknown packing category should normalize to other, got %s", item.Category)
	}
	if item.Packed {
		t.Error("New item should start unpacked")
	}

	if err := TogglePackingItem(db, user.ID, trip.ID, item.ID); err != nil {
		t.Fatal("Failed to toggle packing item:", err)
	}

	items, err := GetPackingItems(db, trip.ID)
	if err != nil {
		t.Fatal("Failed to list packing items:", err)
	}
	if len(items) != 1 || !items[0].Packed {
		t.Error("Item should be packed after toggle")
	}
}

func TestAccommodationTotalDerivedFromNights(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	acc, err := CreateAccommodation(db, user.ID, trip.ID, models.Accommodation{
		Name:          "Готель Опера",
		CheckIn:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		PricePerNight: 100,
		TotalPrice:    9999, // caller-supplied totals are ignored
	})
	if err != nil {
		t.Fatal("Failed to create accommodation:", err)
	}

	if nights := acc.Nights(); nights != 3 {
		t.Errorf("Expected 3 nights, got %d", nights)
	}
	if acc.TotalPrice != 300 {
		t.Errorf("Expected derived total 300, got %.2f", acc.TotalPrice)
	}
	if acc.BookingStatus != "pending" {
		t.Errorf("Expected default booking status 'pending', got %s", acc.BookingStatus)
	}

	_, err = CreateAccommodation(db, user.ID, trip.ID, models.Accommodation{
		Name:          "Нуль ночей",
		CheckIn:       time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		PricePerNight: 100,
	})
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation when check-out equals check-in, got:", err)
	}

	// An edit recomputes the total from the new dates.
	acc.CheckOut = time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)
	if err := UpdateAccommodation(db, user.ID, trip.ID, acc.ID, *acc); err != nil {
		t.Fatal("Failed to update accommodation:", err)
	}

	updated, err := GetAccommodation(db, user.ID, trip.ID, acc.ID)
	if err != nil {
		t.Fatal("Failed to reload accommodation:", err)
	}
	if updated.TotalPrice != 500 {
		t.Errorf("Expected recomputed total 500, got %.2f", updated.TotalPrice)
	}
}

func countRows(t *testing.T, db *sql.DB, table string, tripID int) int {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE trip_id = ?", tripID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

func TestTripCascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	if _, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Музей", Date: trip.StartDate, Cost: 20,
	}); err != nil {
		t.Fatal("Failed to create activity:", err)
	}
	if _, err := CreatePackingItem(db, user.ID, trip.ID, models.PackingItem{
		Name: "Парасоля", Quantity: 1,
	}); err != nil {
		t.Fatal("Failed to create packing item:", err)
	}
	if _, err := CreateAccommodation(db, user.ID, trip.ID, models.Accommodation{
		Name:          "Хостел",
		CheckIn:       trip.StartDate,
		CheckOut:      trip.EndDate,
		PricePerNight: 30,
	}); err != nil {
		t.Fatal("Failed to create accommodation:", err)
	}

	if err := DeleteTrip(db, user.ID, trip.ID); err != nil {
		t.Fatal("Failed to delete trip:", err)
	}

	if _, err := GetTrip(db, user.ID, trip.ID); !errors.Is(err, ErrNotFound) {
		t.Error("Deleted trip should be gone, got:", err)
	}

	for _, table := range []string{"activities", "packing_items", "accommodations"} {
		if n := countRows(t, db, table, trip.ID); n != 0 {
			t.Errorf("Expected no %s rows after cascade, found %d", table, n)
		}
	}
}

func TestUserCascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	if _, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Вечеря", Date: trip.StartDate, Cost: 40, Category: models.ActivityCategoryFood,
	}); err != nil {
		t.Fatal("Failed to create activity:", err)
	}

	if _, err := CreateSession(db, user.ID, testSessionDuration); err != nil {
		t.Fatal("Failed to create session:", err)
	}

	if err := DeleteUser(db, user.ID); err != nil {
		t.Fatal("Failed to delete user:", err)
	}

	if _, err := GetUserByID(db, user.ID); !errors.Is(err, ErrNotFound) {
		t.Error("Deleted user should be gone, got:", err)
	}

	var trips, activities, sessions int
	db.QueryRow("SELECT COUNT(*) FROM trips WHERE user_id = ?", user.ID).Scan(&trips)
	db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&activities)
	db.QueryRow("SELECT COUNT(*) FROM sessions WHERE user_id = ?", user.ID).Scan(&sessions)
	if trips != 0 || activities != 0 || sessions != 0 {
		t.Errorf("User delete left orphans: trips=%d activities=%d sessions=%d", trips, activities, sessions)
	}
}

func TestGetUserStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	if _, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Обід", Date: trip.StartDate, Cost: 25, Category: models.ActivityCategoryFood,
	}); err != nil {
		t.Fatal("Failed to create activity:", err)
	}
	second, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
		Title: "Потяг", Date: trip.StartDate, Cost: 15, Category: models.ActivityCategoryTransport,
	})
	if err != nil {
		t.Fatal("Failed to create activity:", err)
	}
	if err := ToggleActivity(db, user.ID, trip.ID, second.ID); err != nil {
		t.Fatal("Failed to toggle activity:", err)
	}
	if _, err := CreateAccommodation(db, user.ID, trip.ID, models.Accommodation{
		Name:          "Квартира",
		CheckIn:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		PricePerNight: 50,
	}); err != nil {
		t.Fatal("Failed to create accommodation:", err)
	}

	stats, err := GetUserStats(db, user.ID)
	if err != nil {
		t.Fatal("Failed to get user stats:", err)
	}

	if stats.TotalTrips != 1 {
		t.Errorf("Expected 1 trip, got %d", stats.TotalTrips)
	}
	if stats.TotalActivities != 2 || stats.CompletedActivities != 1 {
		t.Errorf("Expected 2 activities with 1 completed, got %d/%d", stats.CompletedActivities, stats.TotalActivities)
	}
	if stats.ActivitySpend != 40 {
		t.Errorf("Expected activity spend 40, got %.2f", stats.ActivitySpend)
	}
	if stats.AccommodationSpend != 100 {
		t.Errorf("Expected accommodation spend 100, got %.2f", stats.AccommodationSpend)
	}
	if stats.TotalSpend != 140 {
		t.Errorf("Expected total spend 140, got %.2f", stats.TotalSpend)
	}
}

func TestGetTripWithDetails(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user := createTestUser(t, db, "testuser", "test@example.com")
	trip := createTestTrip(t, db, user.ID)

	for _, title := range []string{"Перша", "Друга", "Третя"} {
		if _, err := CreateActivity(db, user.ID, trip.ID, models.Activity{
			Title: title, Date: trip.StartDate,
		}); err != nil {
			t.Fatal("Failed to create activity:", err)
		}
	}

	loaded, err := GetTripWithDetails(db, user.ID, trip.ID)
	if err != nil {
		t.Fatal("Failed to load trip with details:", err)
	}

	if len(loaded.Activities) != 3 {
		t.Fatalf("Expected 3 activities, got %d", len(loaded.Activities))
	}

	// Child rows come back in insertion order.
	if loaded.Activities[0].Title != "Перша" || loaded.Activities[2].Title != "Третя" {
		t.Error("Activities should be listed in insertion order")
	}
}
