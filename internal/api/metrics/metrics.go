// Package metrics defines and registers all custom Prometheus metrics for the
// image studio API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors register with the default Prometheus registry on import via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studio"

// ── Generation metrics ────────────────────────────────────────────────────────

// GenerationsTotal counts calls to the upstream generator.
// Labels:
//   - quality: "standard" or "high"
//   - outcome: "success", "upstream_error", "no_url" or "error"
var GenerationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Total number of image generation attempts, by quality and outcome.",
	},
	[]string{"quality", "outcome"},
)

// GenerationDuration measures the upstream round trip.
var GenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of upstream image generation calls.",
		Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	},
	[]string{"outcome"},
)

// ── Image metrics ─────────────────────────────────────────────────────────────

// ImagesCreatedTotal counts stored images.
// Label:
//   - visibility: "public" or "private"
var ImagesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_created_total",
		Help:      "Total number of images saved, by visibility.",
	},
	[]string{"visibility"},
)

// LikesTotal counts accepted likes.
var LikesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of likes applied to community images.",
	},
)

// VisibilityTogglesTotal counts visibility flips.
// Label:
//   - to: the new visibility, "public" or "private"
var VisibilityTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visibility_toggles_total",
		Help:      "Total number of image visibility changes, by resulting visibility.",
	},
	[]string{"to"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of profiles created.",
	},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityRecordedTotal counts audit events persisted by the dispatcher.
// Label:
//   - kind: the activity kind (e.g. "image_liked")
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity events recorded, by kind.",
	},
	[]string{"kind"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// Visibility maps a public flag onto its label value.
func Visibility(public bool) string {
	if public {
		return "public"
	}
	return "private"
}
