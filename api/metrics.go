/*
metrics.go - Prometheus instrumentation

PURPOSE:
  Counts uploads and report generations and times report builds. Exposed on
  /metrics via promhttp alongside the Go runtime collectors.

SEE ALSO:
  - server.go: mounts the /metrics endpoint
  - handlers.go: records the values
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetUploads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "availability",
		Name:      "dataset_uploads_total",
		Help:      "Number of datasets uploaded.",
	})

	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "availability",
		Name:      "reports_generated_total",
		Help:      "Number of reports generated, by partition scheme.",
	}, []string{"partition"})

	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "availability",
		Name:      "report_duration_seconds",
		Help:      "Time spent building and rendering one report.",
		Buckets:   prometheus.DefBuckets,
	})
)
