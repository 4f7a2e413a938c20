package program

import (
	"fmt"
	"strconv"
	"strings"
)

// Category can be one of:
//   - training
//   - nutrition
//   - recovery
type Category string

const (
	CategoryTraining  Category = "training"
	CategoryNutrition Category = "nutrition"
	CategoryRecovery  Category = "recovery"
)

// Categories in checklist display order.
var Categories = []Category{CategoryTraining, CategoryNutrition, CategoryRecovery}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryTraining, CategoryNutrition, CategoryRecovery:
		return true
	default:
		return false
	}
}

type CheckItem struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// ItemID derives the checklist item identity, e.g. "training-0".
// This is the only place the format is defined; it is stable only while the
// per-category list order and length of a weekday stay unchanged.
func ItemID(category Category, index int) string {
	return fmt.Sprintf("%s-%d", category, index)
}

// ParseItemID splits an item identity back into category and index.
func ParseItemID(id string) (Category, int, error) {
	sep := strings.LastIndex(id, "-")
	if sep <= 0 || sep == len(id)-1 {
		return "", 0, fmt.Errorf("invalid item id [%s]", id)
	}
	category := Category(id[:sep])
	if !category.IsValid() {
		return "", 0, fmt.Errorf("invalid item id [%s]: unknown category", id)
	}
	index, err := strconv.Atoi(id[sep+1:])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("invalid item id [%s]: bad index", id)
	}
	return category, index, nil
}

func (ds *DailySchedule) labels(category Category) []string {
	switch category {
	case CategoryTraining:
		return ds.Training
	case CategoryNutrition:
		return ds.Nutrition
	case CategoryRecovery:
		return ds.Recovery
	default:
		return nil
	}
}

// Items lists the checklist of the day in display order.
func (ds *DailySchedule) Items() []CheckItem {
	items := make([]CheckItem, 0, ds.TotalItems())
	for _, category := range Categories {
		for i, label := range ds.labels(category) {
			items = append(items, CheckItem{
				ID:       ItemID(category, i),
				Label:    label,
				Category: category,
			})
		}
	}
	return items
}

func (ds *DailySchedule) TotalItems() int {
	return len(ds.Training) + len(ds.Nutrition) + len(ds.Recovery)
}

// HasItem reports whether id refers to an item of this day.
func (ds *DailySchedule) HasItem(id string) bool {
	category, index, err := ParseItemID(id)
	if err != nil {
		return false
	}
	return index < len(ds.labels(category))
}

// IsRestDay follows the convention that a rest day leads its training list with "Rest".
func (ds *DailySchedule) IsRestDay() bool {
	return len(ds.Training) > 0 && strings.Contains(ds.Training[0], "Rest")
}
