// Package report computes derived trip views from already-loaded rows.
// Everything here is a pure function: no database access, no side effects,
// recomputed on every request.
package report

import (
	"mandry/internal/models"
)

// TripStatistics is the aggregated budget/progress view of one trip.
type TripStatistics struct {
	CategorySpend       map[string]float64 `json:"category_spend"`
	AccommodationTotal  float64            `json:"accommodation_total"`
	TotalSpent          float64            `json:"total_spent"`
	RemainingBudget     float64            `json:"remaining_budget"`
	BudgetPercentage    float64            `json:"budget_percentage"`
	TotalActivities     int                `json:"total_activities"`
	CompletedActivities int                `json:"completed_activities"`
	CompletionRate      float64            `json:"completion_rate"`
	Packing             PackingProgress    `json:"packing"`
	CategoryData        []CategoryAmount   `json:"category_data"`
}

// CategoryAmount is one labeled spend bucket.
type CategoryAmount struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
}

// PackingProgress summarizes the packing checklist.
type PackingProgress struct {
	TotalItems  int                       `json:"total_items"`
	PackedItems int                       `json:"packed_items"`
	Percentage  float64                   `json:"percentage"`
	Categories  []PackingCategoryProgress `json:"categories"`
}

// PackingCategoryProgress is packed/total for one packing category.
type PackingCategoryProgress struct {
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	TotalItems  int     `json:"total_items"`
	PackedItems int     `json:"packed_items"`
	Percentage  float64 `json:"percentage"`
}

// Compute builds the full statistics view for a trip. Activities and
// packing items whose category is not in the fixed set are excluded from
// the grouped numbers, matching the stored behavior of older rows.
func Compute(trip *models.Trip, activities []models.Activity, packingItems []models.PackingItem, accommodations []models.Accommodation) TripStatistics {
	stats := TripStatistics{
		CategorySpend: CategorySpend(activities),
	}

	stats.AccommodationTotal = AccommodationTotal(accommodations)

	for _, amount := range stats.CategorySpend {
		stats.TotalSpent += amount
	}
	stats.TotalSpent += stats.AccommodationTotal

	stats.RemainingBudget = trip.Budget - stats.TotalSpent
	if trip.Budget > 0 {
		stats.BudgetPercentage = stats.TotalSpent / trip.Budget * 100
	}

	stats.TotalActivities = len(activities)
	for _, activity := range activities {
		if activity.Completed {
			stats.CompletedActivities++
		}
	}
	if stats.TotalActivities > 0 {
		stats.CompletionRate = float64(stats.CompletedActivities) / float64(stats.TotalActivities) * 100
	}

	stats.Packing = ComputePackingProgress(packingItems)
	stats.CategoryData = CategoryData(stats.CategorySpend, stats.AccommodationTotal)

	return stats
}

// CategorySpend sums activity costs per category over the fixed set.
// Unknown categories are silently dropped.
func CategorySpend(activities []models.Activity) map[string]float64 {
	spend := make(map[string]float64, len(models.ActivityCategories))
	for _, category := range models.ActivityCategories {
		spend[category] = 0
	}

	for _, activity := range activities {
		if _, ok := spend[activity.Category]; ok {
			spend[activity.Category] += activity.Cost
		}
	}

	return spend
}

// AccommodationTotal sums the derived total price of all bookings.
func AccommodationTotal(accommodations []models.Accommodation) float64 {
	var total float64
	for _, acc := range accommodations {
		total += acc.TotalPrice
	}
	return total
}

// CategoryData lists the categories actually carrying cost, in the fixed
// category order, with the synthetic hotel bucket appended when
// accommodation spend is nonzero.
func CategoryData(categorySpend map[string]float64, accommodationTotal float64) []CategoryAmount {
	var data []CategoryAmount
	for _, category := range models.ActivityCategories {
		amount := categorySpend[category]
		if amount == 0 {
			continue
		}
		data = append(data, CategoryAmount{
			Category: category,
			Label:    models.ActivityCategoryLabels[category],
			Amount:   amount,
		})
	}

	if accommodationTotal > 0 {
		data = append(data, CategoryAmount{
			Category: models.AccommodationBucket,
			Label:    models.ActivityCategoryLabels[models.AccommodationBucket],
			Amount:   accommodationTotal,
		})
	}

	return data
}

// ComputePackingProgress groups packing items by the fixed category set and
// reports packed percentages, 0 when the list is empty.
func ComputePackingProgress(items []models.PackingItem) PackingProgress {
	type bucket struct {
		total  int
		packed int
	}
	buckets := make(map[string]*bucket, len(models.PackingCategories))
	for _, category := range models.PackingCategories {
		buckets[category] = &bucket{}
	}

	progress := PackingProgress{}
	for _, item := range items {
		b, ok := buckets[item.Category]
		if !ok {
			// Same silent-exclusion policy as activity categories.
			continue
		}
		b.total++
		progress.TotalItems++
		if item.Packed {
			b.packed++
			progress.PackedItems++
		}
	}

	if progress.TotalItems > 0 {
		progress.Percentage = float64(progress.PackedItems) / float64(progress.TotalItems) * 100
	}

	for _, category := range models.PackingCategories {
		b := buckets[category]
		if b.total == 0 {
			continue
		}
		cp := PackingCategoryProgress{
			Category:    category,
			Label:       models.PackingCategoryLabels[category],
			TotalItems:  b.total,
			PackedItems: b.packed,
		}
		cp.Percentage = float64(b.packed) / float64(b.total) * 100
		progress.Categories = append(progress.Categories, cp)
	}

	return progress
}
