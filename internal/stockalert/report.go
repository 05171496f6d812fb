package stockalert

import (
	"fmt"
	"strings"
	"time"

	"canteen-api/internal/catalog"
)

// Report is the printable stock status summary shown in the console.
type Report struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Thresholds  Thresholds `json:"thresholds"`
	Alerts      Alerts     `json:"alerts"`
	Text        string     `json:"text"`
}

// BuildReport surveys the catalogue and renders a human-readable summary.
func BuildReport(items []catalog.MenuItem, t Thresholds, now time.Time) Report {
	alerts := Classify(items, t)

	var b strings.Builder
	fmt.Fprintf(&b, "Stock Status Report - %s\n\n", now.Format("Mon, 02 Jan 2006 15:04"))
	writeSection(&b, "OUT OF STOCK", alerts.OutOfStock)
	writeSection(&b, fmt.Sprintf("CRITICAL (%d or less)", t.Critical), alerts.Critical)
	writeSection(&b, fmt.Sprintf("LOW (%d or less)", t.Low), alerts.Low)
	if alerts.Total() == 0 {
		b.WriteString("All limited-stock items are healthy.\n")
	}

	return Report{
		GeneratedAt: now,
		Thresholds:  t,
		Alerts:      alerts,
		Text:        b.String(),
	}
}

func writeSection(b *strings.Builder, title string, items []catalog.MenuItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s (%d left)\n", item.Name, item.StockCount)
	}
	b.WriteString("\n")
}
