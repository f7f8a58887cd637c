package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors: метрики сервиса. Регистрируются в собственном реестре,
// чтобы тесты могли создавать их сколько угодно раз.
type Collectors struct {
	Registry *prometheus.Registry

	ImportedRows *prometheus.CounterVec // result=accepted|rejected
	Imports      *prometheus.CounterVec // format=csv|xlsx|xls
	RankDuration prometheus.Histogram
	RankedFrames prometheus.Histogram
	CacheHits    *prometheus.CounterVec // result=hit|miss
}

func New() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		ImportedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lensfit",
			Name:      "import_rows_total",
			Help:      "Catalog rows processed by import, by result.",
		}, []string{"result"}),
		Imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lensfit",
			Name:      "imports_total",
			Help:      "Catalog uploads, by file format.",
		}, []string{"format"}),
		RankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lensfit",
			Name:      "rank_duration_seconds",
			Help:      "Time spent recomputing a ranked quote.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		RankedFrames: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lensfit",
			Name:      "ranked_frames",
			Help:      "Frames per ranked quote.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lensfit",
			Name:      "quote_cache_total",
			Help:      "Quote cache lookups, by result.",
		}, []string{"result"}),
	}
	c.Registry.MustRegister(
		c.ImportedRows, c.Imports, c.RankDuration, c.RankedFrames, c.CacheHits,
		collectors.NewGoCollector(),
	)
	return c
}

func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}
