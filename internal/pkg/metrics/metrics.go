package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolutions counts slug resolutions by outcome: "gift_site",
// "valentine_page", "not_found", "error".
var Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "giftloom",
	Name:      "resolutions_total",
	Help:      "Slug resolutions grouped by outcome.",
}, []string{"outcome"})

// Responses counts recorded gift responses by kind.
var Responses = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "giftloom",
	Name:      "gift_responses_total",
	Help:      "Recorded gift responses grouped by kind.",
}, []string{"kind"})

// LayoutBuilds counts dispatched layouts by template type.
var LayoutBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "giftloom",
	Name:      "layout_builds_total",
	Help:      "Layouts built grouped by template type.",
}, []string{"template"})
