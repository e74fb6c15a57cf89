package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	votesTotal          *prometheus.CounterVec
	listingCacheLookups *prometheus.CounterVec
	registerOnce        sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchboard",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the launchboard API.",
		}, []string{"method", "path", "status"})

		votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchboard",
			Name:      "votes_total",
			Help:      "Total product votes applied, by direction.",
		}, []string{"direction"})

		listingCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchboard",
			Name:      "listing_cache_lookups_total",
			Help:      "Listing cache lookups, by view and hit/miss result.",
		}, []string{"view", "result"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncVote increments the votes_total counter for a direction.
func IncVote(direction string) {
	if votesTotal == nil {
		return
	}
	votesTotal.WithLabelValues(direction).Inc()
}

// IncCacheLookup records a listing cache hit or miss.
func IncCacheLookup(view string, hit bool) {
	if listingCacheLookups == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	listingCacheLookups.WithLabelValues(view, result).Inc()
}
