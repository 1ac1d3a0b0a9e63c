package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exposes metric events as Prometheus counters.
type PrometheusRecorder struct {
	sessionsCreated prometheus.Counter
	menuItems       *prometheus.CounterVec
	promotions      *prometheus.CounterVec
	ledgerEntries   *prometheus.CounterVec
	storefrontViews prometheus.Counter
}

// NewPrometheus creates a Recorder registered on the given registerer.
// Pass prometheus.DefaultRegisterer in production.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tavolo_sessions_created_total",
			Help: "Number of login sessions created.",
		}),
		menuItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tavolo_menu_items_total",
			Help: "Menu item mutations by operation.",
		}, []string{"op"}),
		promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tavolo_promotions_total",
			Help: "Promotion mutations by operation.",
		}, []string{"op"}),
		ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tavolo_ledger_entries_total",
			Help: "Ledger entries recorded by kind.",
		}, []string{"kind"}),
		storefrontViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tavolo_storefront_views_total",
			Help: "Public storefront page views.",
		}),
	}

	reg.MustRegister(
		r.sessionsCreated,
		r.menuItems,
		r.promotions,
		r.ledgerEntries,
		r.storefrontViews,
	)

	return r
}

func (r *PrometheusRecorder) IncSessionCreated() { r.sessionsCreated.Inc() }

func (r *PrometheusRecorder) IncMenuItemCreated() { r.menuItems.WithLabelValues("create").Inc() }
func (r *PrometheusRecorder) IncMenuItemUpdated() { r.menuItems.WithLabelValues("update").Inc() }
func (r *PrometheusRecorder) IncMenuItemDeleted() { r.menuItems.WithLabelValues("delete").Inc() }

func (r *PrometheusRecorder) IncPromotionCreated() { r.promotions.WithLabelValues("create").Inc() }
func (r *PrometheusRecorder) IncPromotionUpdated() { r.promotions.WithLabelValues("update").Inc() }
func (r *PrometheusRecorder) IncPromotionDeleted() { r.promotions.WithLabelValues("delete").Inc() }

func (r *PrometheusRecorder) IncLedgerEntryRecorded(kind string) {
	r.ledgerEntries.WithLabelValues(kind).Inc()
}

func (r *PrometheusRecorder) IncStorefrontView() { r.storefrontViews.Inc() }
