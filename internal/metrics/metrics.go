// Package metrics exposes Prometheus instrumentation for the specials
// scheduler and the stock engines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for this process.
type Metrics struct {
	registry *prometheus.Registry

	SpecialsApplied prometheus.Counter
	RemindersFired  prometheus.Counter
	AutoDisables    prometheus.Counter
	RefusedEnables  prometheus.Counter
	StockTierItems  *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SpecialsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "specials_applications_total",
			Help: "Daily specials schedule applications",
		}),
		RemindersFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_reminders_fired_total",
			Help: "Stock update reminders fired",
		}),
		AutoDisables: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "items_auto_disabled_total",
			Help: "Menu items force-disabled on reaching zero stock",
		}),
		RefusedEnables: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "enable_refusals_total",
			Help: "Enable attempts refused for out-of-stock items",
		}),
		StockTierItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stock_tier_items",
			Help: "Limited-stock items per alert tier",
		}, []string{"tier"}),
	}

	m.registry.MustRegister(
		m.SpecialsApplied,
		m.RemindersFired,
		m.AutoDisables,
		m.RefusedEnables,
		m.StockTierItems,
	)
	return m
}

// Handler returns the scrape endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
