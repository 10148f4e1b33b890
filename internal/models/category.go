package models

import "sort"

// Category is a fixed spending bucket.
type Category string

const (
	CategoryGroceries     Category = "groceries"
	CategoryDining        Category = "dining"
	CategoryGas           Category = "gas"
	CategoryFlights       Category = "flights"
	CategoryHotels        Category = "hotels"
	CategoryStreaming     Category = "streaming"
	CategoryEntertainment Category = "entertainment"
	CategoryTransit       Category = "transit"
	CategoryPhone         Category = "phone"
	CategoryOnlineRetail  Category = "online_retail"
	CategoryDrugstore     Category = "drugstore"
	CategoryOther         Category = "other"
)

// CategoryInfo carries the display data for one category.
type CategoryInfo struct {
	Key         Category `json:"key" yaml:"key" csv:"key"`
	Label       string   `json:"label" yaml:"label" csv:"label"`
	Icon        string   `json:"icon" yaml:"icon" csv:"icon"`
	Placeholder string   `json:"placeholder" yaml:"placeholder" csv:"placeholder"`
}

// Categories is the one enumeration of spending categories. Payload
// construction, profile loading and every renderer iterate over it, in this
// order.
var Categories = []CategoryInfo{
	{Key: CategoryGroceries, Label: "Groceries", Icon: "🛒", Placeholder: "500"},
	{Key: CategoryDining, Label: "Dining & Restaurants", Icon: "🍽️", Placeholder: "300"},
	{Key: CategoryGas, Label: "Gas & Fuel", Icon: "⛽", Placeholder: "150"},
	{Key: CategoryFlights, Label: "Flights", Icon: "✈️", Placeholder: "100"},
	{Key: CategoryHotels, Label: "Hotels", Icon: "🏨", Placeholder: "100"},
	{Key: CategoryStreaming, Label: "Streaming Services", Icon: "📺", Placeholder: "50"},
	{Key: CategoryEntertainment, Label: "Entertainment", Icon: "🎬", Placeholder: "100"},
	{Key: CategoryTransit, Label: "Transit & Rideshare", Icon: "🚇", Placeholder: "80"},
	{Key: CategoryPhone, Label: "Phone & Internet", Icon: "📱", Placeholder: "90"},
	{Key: CategoryOnlineRetail, Label: "Online Shopping", Icon: "📦", Placeholder: "150"},
	{Key: CategoryDrugstore, Label: "Drugstores", Icon: "💊", Placeholder: "40"},
	{Key: CategoryOther, Label: "Other Purchases", Icon: "🛍️", Placeholder: "200"},
}

var categoryIndex = func() map[Category]int {
	idx := make(map[Category]int, len(Categories))
	for i, c := range Categories {
		idx[c.Key] = i
	}
	return idx
}()

// ParseCategory resolves a key such as "online_retail".
func ParseCategory(key string) (Category, bool) {
	c := Category(key)
	_, ok := categoryIndex[c]
	return c, ok
}

// Info returns the display data for c. Unknown categories get their key as label.
func (c Category) Info() CategoryInfo {
	if i, ok := categoryIndex[c]; ok {
		return Categories[i]
	}
	return CategoryInfo{Key: c, Label: string(c)}
}

// SortCategoryKeys orders arbitrary breakdown keys: known categories first in
// enumeration order, then unknown keys alphabetically.
func SortCategoryKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		ii, iok := categoryIndex[Category(keys[i])]
		jj, jok := categoryIndex[Category(keys[j])]
		switch {
		case iok && jok:
			return ii < jj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
}
