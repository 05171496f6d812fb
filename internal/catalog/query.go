package catalog

import (
	"sort"
	"strings"
)

// Search matches items by name, description or category, case-insensitively.
// An empty query returns the input unchanged.
func Search(items []MenuItem, query string) []MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	var out []MenuItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(string(it.Category)), q) {
			out = append(out, it)
		}
	}
	return out
}

// FilterByCategory keeps items in the given category; "all" or empty keeps
// everything.
func FilterByCategory(items []MenuItem, category string) []MenuItem {
	if category == "" || category == "all" {
		return items
	}
	var out []MenuItem
	for _, it := range items {
		if string(it.Category) == category {
			out = append(out, it)
		}
	}
	return out
}

// Stock filter kinds.
const (
	StockFilterLow       = "low"
	StockFilterOut       = "out"
	StockFilterAvailable = "available"
	StockFilterDisabled  = "disabled"
)

// FilterByStock keeps items matching a stock state. Unknown kinds keep
// everything.
func FilterByStock(items []MenuItem, kind string, lowThreshold int) []MenuItem {
	var keep func(MenuItem) bool
	switch kind {
	case StockFilterLow:
		keep = func(it MenuItem) bool {
			return it.StockType == StockLimited && it.StockCount < lowThreshold
		}
	case StockFilterOut:
		keep = func(it MenuItem) bool {
			return it.StockType == StockLimited && it.StockCount == 0
		}
	case StockFilterAvailable:
		keep = func(it MenuItem) bool { return it.IsEnabled }
	case StockFilterDisabled:
		keep = func(it MenuItem) bool { return !it.IsEnabled }
	default:
		return items
	}

	var out []MenuItem
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Sort keys accepted by SortItems.
const (
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortStockAsc  = "stock_asc"
	SortStockDesc = "stock_desc"
)

// SortItems returns a sorted copy; unknown keys return the copy unsorted.
// Unlimited items sort as infinitely stocked.
func SortItems(items []MenuItem, key string) []MenuItem {
	sorted := make([]MenuItem, len(items))
	copy(sorted, items)

	stock := func(it MenuItem) int {
		if it.StockType == StockUnlimited {
			return int(^uint(0) >> 1)
		}
		return it.StockCount
	}

	switch key {
	case SortNameAsc:
		sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Name < sorted[b].Name })
	case SortNameDesc:
		sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Name > sorted[b].Name })
	case SortPriceAsc:
		sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Price < sorted[b].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Price > sorted[b].Price })
	case SortStockAsc:
		sort.SliceStable(sorted, func(a, b int) bool { return stock(sorted[a]) < stock(sorted[b]) })
	case SortStockDesc:
		sort.SliceStable(sorted, func(a, b int) bool { return stock(sorted[a]) > stock(sorted[b]) })
	}
	return sorted
}
