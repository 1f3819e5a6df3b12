package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webrank_pages_fetched_total",
		Help: "Total number of pages successfully fetched",
	})
	PagesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webrank_pages_failed_total",
		Help: "Total number of fetches that returned no body",
	})
	BytesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webrank_bytes_fetched_total",
		Help: "Total bytes downloaded",
	})
	URLsEnqueued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webrank_urls_enqueued_total",
		Help: "Total URLs admitted to the frontier",
	})
)

func init() {
	prometheus.MustRegister(PagesFetched, PagesFailed, BytesFetched, URLsEnqueued)
}
