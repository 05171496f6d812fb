package specials

import "canteen-api/internal/catalog"

// ItemRef is one scheduled item in the weekly report. Missing marks IDs
// whose menu item no longer exists.
type ItemRef struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// DayReport summarizes one weekday of the specials schedule.
type DayReport struct {
	Day     Day       `json:"day"`
	Label   string    `json:"label"`
	IsToday bool      `json:"isToday"`
	Count   int       `json:"count"`
	Items   []ItemRef `json:"items"`
}

// BuildReport resolves the weekly schedule against the menu catalogue,
// in Sunday-first order with today flagged.
func BuildReport(schedule Schedule, cat *catalog.Store, today Day) []DayReport {
	report := make([]DayReport, 0, len(Days))
	for _, d := range Days {
		entry := DayReport{Day: d, Label: d.Title(), IsToday: d == today, Items: []ItemRef{}}
		for _, id := range schedule[d] {
			ref := ItemRef{ID: id}
			if item, ok := cat.Find(id); ok {
				ref.Name = item.Name
			} else {
				ref.Missing = true
			}
			entry.Items = append(entry.Items, ref)
		}
		entry.Count = len(entry.Items)
		report = append(report, entry)
	}
	return report
}
