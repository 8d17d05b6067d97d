package models

import (
	"testing"
	"time"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "three nights",
			checkIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			want:     3,
		},
		{
			name:     "single night",
			checkIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "time of day is ignored",
			checkIn:  time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "month boundary",
			checkIn:  time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeActivityCategory(t *testing.T) {
	if got := NormalizeActivityCategory("food"); got != ActivityCategoryFood {
		t.Errorf("Expected food to stay food, got %s", got)
	}
	if got := NormalizeActivityCategory("nonsense"); got != ActivityCategoryGeneral {
		t.Errorf("Expected unknown category to become general, got %s", got)
	}
	if got := NormalizeActivityCategory(""); got != ActivityCategoryGeneral {
		t.Errorf("Expected empty category to become general, got %s", got)
	}
}

func TestNormalizePackingCategory(t *testing.T) {
	if got := NormalizePackingCategory("clothes"); got != PackingCategoryClothes {
		t.Errorf("Expected clothes to stay clothes, got %s", got)
	}
	if got := NormalizePackingCategory("misc"); got != PackingCategoryOther {
		t.Errorf("Expected unknown category to become other, got %s", got)
	}
}

func TestCategoryLabelsCoverFixedSets(t *testing.T) {
	for _, category := range ActivityCategories {
		if _, ok := ActivityCategoryLabels[category]; !ok {
			t.Errorf("Missing label for activity category %s", category)
		}
	}
	if _, ok := ActivityCategoryLabels[AccommodationBucket]; !ok {
		t.Error("Missing label for the accommodation bucket")
	}
	for _, category := range PackingCategories {
		if _, ok := PackingCategoryLabels[category]; !ok {
			t.Errorf("Missing label for packing category %s", category)
		}
	}
}
