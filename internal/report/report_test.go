package report

import (
	"testing"
	"time"

	"mandry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeBudgetAndCategories(t *testing.T) {
	trip := &models.Trip{Budget: 1000}
	activities := []models.Activity{
		{Title: "Вечеря", Date: day(1), Cost: 250, Category: models.ActivityCategoryFood, Completed: true},
		{Title: "Таксі", Date: day(2), Cost: 100, Category: models.ActivityCategoryTransport},
	}

	stats := Compute(trip, activities, nil, nil)

	assert.Equal(t, 250.0, stats.CategorySpend[models.ActivityCategoryFood])
	assert.Equal(t, 100.0, stats.CategorySpend[models.ActivityCategoryTransport])
	assert.Equal(t, 0.0, stats.CategorySpend[models.ActivityCategoryShopping])
	assert.Equal(t, 350.0, stats.TotalSpent)
	assert.Equal(t, 650.0, stats.RemainingBudget)
	assert.InDelta(t, 35.0, stats.BudgetPercentage, 0.001)
	assert.Equal(t, 2, stats.TotalActivities)
	assert.Equal(t, 1, stats.CompletedActivities)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.001)
}

func TestComputeUnknownCategoryIsExcluded(t *testing.T) {
	trip := &models.Trip{Budget: 100}
	activities := []models.Activity{
		{Title: "Звідки це", Date: day(1), Cost: 40, Category: "time-travel"},
		{Title: "Кава", Date: day(1), Cost: 10, Category: models.ActivityCategoryFood},
	}

	stats := Compute(trip, activities, nil, nil)

	_, present := stats.CategorySpend["time-travel"]
	assert.False(t, present, "categories outside the fixed set must not appear")
	assert.Equal(t, 10.0, stats.TotalSpent, "unknown-category cost stays out of the totals")
}

func TestComputeZeroFallbacks(t *testing.T) {
	stats := Compute(&models.Trip{Budget: 0}, nil, nil, nil)

	assert.Equal(t, 0.0, stats.BudgetPercentage, "zero budget must not divide")
	assert.Equal(t, 0.0, stats.CompletionRate, "no activities means 0% completion")
	assert.Equal(t, 0.0, stats.Packing.Percentage)
	assert.Empty(t, stats.CategoryData)
}

func TestComputeOverspendGoesNegative(t *testing.T) {
	trip := &models.Trip{Budget: 100}
	activities := []models.Activity{
		{Title: "Шопінг", Date: day(1), Cost: 150, Category: models.ActivityCategoryShopping},
	}

	stats := Compute(trip, activities, nil, nil)

	assert.Equal(t, -50.0, stats.RemainingBudget)
	assert.InDelta(t, 150.0, stats.BudgetPercentage, 0.001)
}

func TestCategoryDataIncludesHotelBucket(t *testing.T) {
	trip := &models.Trip{Budget: 1000}
	activities := []models.Activity{
		{Title: "Обід", Date: day(1), Cost: 50, Category: models.ActivityCategoryFood},
	}
	accommodations := []models.Accommodation{
		{Name: "Готель", CheckIn: day(1), CheckOut: day(3), TotalPrice: 200},
	}

	stats := Compute(trip, activities, nil, accommodations)

	require.Len(t, stats.CategoryData, 2)
	assert.Equal(t, models.ActivityCategoryFood, stats.CategoryData[0].Category)
	assert.Equal(t, models.AccommodationBucket, stats.CategoryData[1].Category)
	assert.Equal(t, "Готелі", stats.CategoryData[1].Label)
	assert.Equal(t, 200.0, stats.CategoryData[1].Amount)
	assert.Equal(t, 250.0, stats.TotalSpent)
}

func TestPackingProgress(t *testing.T) {
	items := []models.PackingItem{
		{Name: "Футболка", Category: models.PackingCategoryClothes, Packed: true},
		{Name: "Шорти", Category: models.PackingCategoryClothes},
		{Name: "Паспорт", Category: models.PackingCategoryDocuments, Packed: true},
		{Name: "Звідкись", Category: "misc"},
	}

	progress := ComputePackingProgress(items)

	assert.Equal(t, 3, progress.TotalItems, "unknown category is excluded")
	assert.Equal(t, 2, progress.PackedItems)
	assert.InDelta(t, 66.67, progress.Percentage, 0.01)

	require.Len(t, progress.Categories, 2)
	assert.Equal(t, models.PackingCategoryClothes, progress.Categories[0].Category)
	assert.Equal(t, 1, progress.Categories[0].PackedItems)
	assert.Equal(t, 2, progress.Categories[0].TotalItems)
	assert.Equal(t, models.PackingCategoryDocuments, progress.Categories[1].Category)
	assert.InDelta(t, 100.0, progress.Categories[1].Percentage, 0.001)
}
