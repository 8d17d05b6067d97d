package models

// Activity categories form a closed set. Values outside it are bucketed into
// the default at create/edit time; rows that still carry an unknown value
// (edited out-of-band) are excluded from aggregates.
const (
	ActivityCategoryTransport     = "transport"
	ActivityCategoryFood          = "food"
	ActivityCategoryActivity      = "activity"
	ActivityCategoryAccommodation = "accommodation"
	ActivityCategoryShopping      = "shopping"
	ActivityCategoryGeneral       = "general"
)

// AccommodationBucket is the synthetic expense category for lodging costs.
const AccommodationBucket = "accommodation_hotels"

const (
	PackingCategoryClothes     = "clothes"
	PackingCategoryToiletries  = "toiletries"
	PackingCategoryElectronics = "electronics"
	PackingCategoryDocuments   = "documents"
	PackingCategoryOther       = "other"
)

// ActivityCategories lists the known activity categories in display order.
var ActivityCategories = []string{
	ActivityCategoryTransport,
	ActivityCategoryFood,
	ActivityCategoryActivity,
	ActivityCategoryAccommodation,
	ActivityCategoryShopping,
	ActivityCategoryGeneral,
}

// PackingCategories lists the known packing categories in display order.
var PackingCategories = []string{
	PackingCategoryClothes,
	PackingCategoryToiletries,
	PackingCategoryElectronics,
	PackingCategoryDocuments,
	PackingCategoryOther,
}

// ActivityCategoryLabels maps categories to their display labels.
var ActivityCategoryLabels = map[string]string{
	ActivityCategoryTransport:     "Транспорт",
	ActivityCategoryFood:          "Їжа",
	ActivityCategoryActivity:      "Активності",
	ActivityCategoryAccommodation: "Проживання",
	ActivityCategoryShopping:      "Шопінг",
	ActivityCategoryGeneral:       "Загальне",
	AccommodationBucket:           "Готелі",
}

// PackingCategoryLabels maps packing categories to their display labels.
var PackingCategoryLabels = map[string]string{
	PackingCategoryClothes:     "Одяг",
	PackingCategoryToiletries:  "Гігієна",
	PackingCategoryElectronics: "Електроніка",
	PackingCategoryDocuments:   "Документи",
	PackingCategoryOther:       "Інше",
}

func IsActivityCategory(category string) bool {
	for _, c := range ActivityCategories {
		if c == category {
			return true
		}
	}
	return false
}

func IsPackingCategory(category string) bool {
	for _, c := range PackingCategories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeActivityCategory buckets unknown values into the default.
func NormalizeActivityCategory(category string) string {
	if IsActivityCategory(category) {
		return category
	}
	return ActivityCategoryGeneral
}

// NormalizePackingCategory buckets unknown values into the default.
func NormalizePackingCategory(category string) string {
	if IsPackingCategory(category) {
		return category
	}
	return PackingCategoryOther
}
