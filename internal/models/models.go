package models

import (
	"time"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActivated  bool      `json:"is_activated" db:"is_activated"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Trip struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Destination string    `json:"destination" db:"destination"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Budget      float64   `json:"budget" db:"budget"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Activities     []Activity      `json:"activities,omitempty"`
	PackingItems   []PackingItem   `json:"packing_items,omitempty"`
	Accommodations []Accommodation `json:"accommodations,omitempty"`
}

type Activity struct {
	ID          int       `json:"id" db:"id"`
	TripID      int       `json:"trip_id" db:"trip_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	TimeOfDay   string    `json:"time_of_day" db:"time_of_day"`
	Location    string    `json:"location" db:"location"`
	Cost        float64   `json:"cost" db:"cost"`
	Category    string    `json:"category" db:"category"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type PackingItem struct {
	ID        int       `json:"id" db:"id"`
	TripID    int       `json:"trip_id" db:"trip_id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Packed    bool      `json:"packed" db:"packed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Accommodation struct {
	ID            int       `json:"id" db:"id"`
	TripID        int       `json:"trip_id" db:"trip_id"`
	Name          string    `json:"name" db:"name"`
	Address       string    `json:"address" db:"address"`
	CheckIn       time.Time `json:"check_in" db:"check_in"`
	CheckOut      time.Time `json:"check_out" db:"check_out"`
	PricePerNight float64   `json:"price_per_night" db:"price_per_night"`
	TotalPrice    float64   `json:"total_price" db:"total_price"`
	BookingRef    string    `json:"booking_ref" db:"booking_ref"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	Website       string    `json:"website" db:"website"`
	Notes         string    `json:"notes" db:"notes"`
	Rating        float64   `json:"rating" db:"rating"`
	Amenities     string    `json:"amenities" db:"amenities"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	BookingStatus string    `json:"booking_status" db:"booking_status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Nights returns the number of whole days between check-in and check-out.
func (a Accommodation) Nights() int {
	return Nights(a.CheckIn, a.CheckOut)
}

// Nights computes whole calendar days between two dates, ignoring time of day.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CSRFToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    int       `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type ActivationToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    int       `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
