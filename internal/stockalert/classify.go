package stockalert

import "canteen-api/internal/catalog"

// Thresholds split limited-stock counts into alert tiers.
type Thresholds struct {
	Low      int `json:"low"`
	Critical int `json:"critical"`
}

// DefaultThresholds match the admin console defaults.
var DefaultThresholds = Thresholds{Low: 10, Critical: 5}

// Alerts groups limited-stock items by severity. Unlimited items never
// alert.
type Alerts struct {
	Low        []catalog.MenuItem `json:"low"`
	Critical   []catalog.MenuItem `json:"critical"`
	OutOfStock []catalog.MenuItem `json:"outOfStock"`
}

// Total counts items across all tiers.
func (a Alerts) Total() int {
	return len(a.Low) + len(a.Critical) + len(a.OutOfStock)
}

// Classify buckets each limited-stock item: out of stock at zero, critical
// up to the critical threshold, low up to the low threshold.
func Classify(items []catalog.MenuItem, t Thresholds) Alerts {
	alerts := Alerts{
		Low:        []catalog.MenuItem{},
		Critical:   []catalog.MenuItem{},
		OutOfStock: []catalog.MenuItem{},
	}
	for _, item := range items {
		if item.StockType != catalog.StockLimited {
			continue
		}
		switch {
		case item.StockCount == 0:
			alerts.OutOfStock = append(alerts.OutOfStock, item)
		case item.StockCount <= t.Critical:
			alerts.Critical = append(alerts.Critical, item)
		case item.StockCount <= t.Low:
			alerts.Low = append(alerts.Low, item)
		}
	}
	return alerts
}
