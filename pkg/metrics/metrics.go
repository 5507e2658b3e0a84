package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sources label the presentation layer that asked for suggestions
const (
	SourceTelegram = "telegram"
	SourceHTTP     = "http"
	SourceCLI      = "cli"
)

var (
	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartpantry_suggestion_requests_total",
			Help: "Total number of suggestion requests",
		},
		[]string{"source"},
	)

	SuggestionResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartpantry_suggestion_results",
			Help:    "Number of recipes returned per suggestion request",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"source"},
	)

	EmptySuggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartpantry_empty_suggestions_total",
			Help: "Suggestion requests that matched no recipe",
		},
		[]string{"source"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "smartpantry_match_duration_seconds",
			Help:    "Time spent ranking the catalog",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	CatalogRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartpantry_catalog_recipes",
			Help: "Number of recipes in the loaded catalog",
		},
	)
)
