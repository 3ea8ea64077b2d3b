package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"

	KindArticles = "articles"
	KindPages    = "pages"
)

var (
	// CategoryMutations counts create/update/delete calls by outcome
	CategoryMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_category_mutations_total",
		Help: "Category mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	// CategoryDeactivations counts subtree deactivations by strategy
	CategoryDeactivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_category_deactivations_total",
		Help: "Category subtree deactivations by strategy",
	}, []string{"strategy"})

	// DeactivatedCategories tracks how many categories one deactivation touched
	DeactivatedCategories = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cms_category_deactivation_size",
		Help:    "Number of categories deactivated per subtree deactivation",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})

	// AffectedContent counts news articles and pages changed by deactivations
	AffectedContent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_category_affected_content_total",
		Help: "News articles and pages unpublished or moved by category deactivations",
	}, []string{"kind"})
)

// ObserveMutation records the outcome of a category mutation
func ObserveMutation(operation, outcome string) {
	CategoryMutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveDeactivation records one subtree deactivation
func ObserveDeactivation(strategy string, categories, articles, pages int64) {
	CategoryDeactivations.WithLabelValues(strategy).Inc()
	DeactivatedCategories.Observe(float64(categories))
	AffectedContent.WithLabelValues(KindArticles).Add(float64(articles))
	AffectedContent.WithLabelValues(KindPages).Add(float64(pages))
}
