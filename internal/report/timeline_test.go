package report

import (
	"testing"

	"mandry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimelineSortedByDate(t *testing.T) {
	activities := []models.Activity{
		{Title: "Пізня вечеря", Date: day(5), Cost: 30, Category: models.ActivityCategoryFood},
		{Title: "Ранній потяг", Date: day(1), Cost: 20, Category: models.ActivityCategoryTransport},
	}
	accommodations := []models.Accommodation{
		{
			Name:       "Готель Центр",
			CheckIn:    day(2),
			CheckOut:   day(4),
			TotalPrice: 200,
		},
	}

	entries := BuildTimeline(activities, accommodations)

	require.Len(t, entries, 3)
	assert.Equal(t, "Ранній потяг", entries[0].Title)
	assert.Equal(t, "Готель Центр (2 ночей)", entries[1].Title)
	assert.Equal(t, "Пізня вечеря", entries[2].Title)
	assert.Equal(t, models.AccommodationBucket, entries[1].Category)
	assert.Equal(t, 200.0, entries[1].Cost)
}

func TestBuildTimelineTieBreak(t *testing.T) {
	activities := []models.Activity{
		{Title: "Сніданок", Date: day(3), Cost: 10, Category: models.ActivityCategoryFood},
		{Title: "Музей", Date: day(3), Cost: 15, Category: models.ActivityCategoryActivity},
	}
	accommodations := []models.Accommodation{
		{Name: "Апартаменти", CheckIn: day(3), CheckOut: day(4), TotalPrice: 80},
	}

	entries := BuildTimeline(activities, accommodations)

	require.Len(t, entries, 3)
	// Same date: activities keep input order and precede accommodations.
	assert.Equal(t, "Сніданок", entries[0].Title)
	assert.Equal(t, "Музей", entries[1].Title)
	assert.Equal(t, "Апартаменти (1 ночей)", entries[2].Title)
}

func TestBuildTimelineUnknownCategoryKeepsRawLabel(t *testing.T) {
	activities := []models.Activity{
		{Title: "Старий запис", Date: day(1), Cost: 5, Category: "legacy"},
	}

	entries := BuildTimeline(activities, nil)

	require.Len(t, entries, 1)
	assert.Equal(t, "legacy", entries[0].Label)
}

func TestBuildBreakdownPercentages(t *testing.T) {
	activities := []models.Activity{
		{Title: "Вечеря", Date: day(1), Cost: 250, Category: models.ActivityCategoryFood},
		{Title: "Таксі", Date: day(2), Cost: 100, Category: models.ActivityCategoryTransport},
	}
	accommodations := []models.Accommodation{
		{Name: "Готель", CheckIn: day(1), CheckOut: day(3), TotalPrice: 150},
	}

	shares := BuildBreakdown(activities, accommodations)

	require.Len(t, shares, 3)
	// Descending by amount.
	assert.Equal(t, models.ActivityCategoryFood, shares[0].Category)
	assert.Equal(t, models.AccommodationBucket, shares[1].Category)
	assert.Equal(t, models.ActivityCategoryTransport, shares[2].Category)

	assert.InDelta(t, 50.0, shares[0].Percentage, 0.001)
	assert.InDelta(t, 30.0, shares[1].Percentage, 0.001)
	assert.InDelta(t, 20.0, shares[2].Percentage, 0.001)

	var sum float64
	for _, s := range shares {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.001)
}

func TestBuildBreakdownEmptyInput(t *testing.T) {
	shares := BuildBreakdown(nil, nil)
	assert.Empty(t, shares)
}

func TestBuildExpenseReportUnknownCategoryStaysOutOfTotal(t *testing.T) {
	activities := []models.Activity{
		{Title: "Обід", Date: day(1), Cost: 30, Category: models.ActivityCategoryFood},
		{Title: "Старий запис", Date: day(2), Cost: 70, Category: "legacy"},
	}

	r := BuildExpenseReport(activities, nil)

	// The legacy row still shows up on the timeline,
	require.Len(t, r.Entries, 2)
	// but the total matches the breakdown's base, not the entry sum.
	assert.Equal(t, 30.0, r.TotalSpent)
	require.Len(t, r.Breakdown, 1)
	assert.InDelta(t, 100.0, r.Breakdown[0].Percentage, 0.001)
}

func TestBuildExpenseReportTotal(t *testing.T) {
	activities := []models.Activity{
		{Title: "Квитки", Date: day(1), Cost: 60, Category: models.ActivityCategoryTransport},
	}
	accommodations := []models.Accommodation{
		{Name: "Хостел", CheckIn: day(1), CheckOut: day(2), TotalPrice: 40},
	}

	r := BuildExpenseReport(activities, accommodations)

	assert.Equal(t, 100.0, r.TotalSpent)
	assert.Len(t, r.Entries, 2)
	assert.Len(t, r.Breakdown, 2)
}
