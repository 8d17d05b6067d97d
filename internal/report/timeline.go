package report

import (
	"fmt"
	"sort"
	"time"

	"mandry/internal/models"
)

// ExpenseEntry is one row of the merged expense timeline.
type ExpenseEntry struct {
	Date     time.Time `json:"date"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Label    string    `json:"label"`
	Cost     float64   `json:"cost"`
}

// CategoryShare is one row of the category breakdown, with its share of
// total spend.
type CategoryShare struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ExpenseReport combines the timeline with the category breakdown.
type ExpenseReport struct {
	Entries    []ExpenseEntry  `json:"entries"`
	Breakdown  []CategoryShare `json:"breakdown"`
	TotalSpent float64         `json:"total_spent"`
}

// BuildTimeline merges activity and accommodation costs into one list
// sorted ascending by date. The sort is stable: same-date entries keep
// input order, activities before accommodations.
func BuildTimeline(activities []models.Activity, accommodations []models.Accommodation) []ExpenseEntry {
	entries := make([]ExpenseEntry, 0, len(activities)+len(accommodations))

	for _, activity := range activities {
		label, ok := models.ActivityCategoryLabels[activity.Category]
		if !ok {
			label = activity.Category
		}
		entries = append(entries, ExpenseEntry{
			Date:     activity.Date,
			Title:    activity.Title,
			Category: activity.Category,
			Label:    label,
			Cost:     activity.Cost,
		})
	}

	for _, acc := range accommodations {
		entries = append(entries, ExpenseEntry{
			Date:     acc.CheckIn,
			Title:    fmt.Sprintf("%s (%d ночей)", acc.Name, acc.Nights()),
			Category: models.AccommodationBucket,
			Label:    models.ActivityCategoryLabels[models.AccommodationBucket],
			Cost:     acc.TotalPrice,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	return entries
}

// BuildBreakdown lists every category with nonzero aggregate cost, hotel
// bucket included, sorted descending by amount. Stable sort keeps equal
// amounts in insertion order so the output is deterministic.
func BuildBreakdown(activities []models.Activity, accommodations []models.Accommodation) []CategoryShare {
	spend := CategorySpend(activities)
	accommodationTotal := AccommodationTotal(accommodations)

	var total float64
	for _, amount := range spend {
		total += amount
	}
	total += accommodationTotal

	var shares []CategoryShare
	for _, category := range models.ActivityCategories {
		amount := spend[category]
		if amount == 0 {
			continue
		}
		shares = append(shares, CategoryShare{
			Category: category,
			Label:    models.ActivityCategoryLabels[category],
			Amount:   amount,
		})
	}

	if accommodationTotal > 0 {
		shares = append(shares, CategoryShare{
			Category: models.AccommodationBucket,
			Label:    models.ActivityCategoryLabels[models.AccommodationBucket],
			Amount:   accommodationTotal,
		})
	}

	if total > 0 {
		for i := range shares {
			shares[i].Percentage = shares[i].Amount / total * 100
		}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount > shares[j].Amount
	})

	return shares
}

// BuildExpenseReport produces the full report for the expenses page.
// TotalSpent sums the breakdown amounts, not the timeline entries, so it
// stays consistent with the percentages when rows carry categories outside
// the fixed set.
func BuildExpenseReport(activities []models.Activity, accommodations []models.Accommodation) ExpenseReport {
	r := ExpenseReport{
		Entries:   BuildTimeline(activities, accommodations),
		Breakdown: BuildBreakdown(activities, accommodations),
	}
	for _, share := range r.Breakdown {
		r.TotalSpent += share.Amount
	}
	return r
}
