package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load metrics, served by the web server at /metrics.
var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "peticiones",
		Name:      "loads_total",
		Help:      "Dataset load attempts by result (ok, config, network, parse)",
	}, []string{"result"})

	loadDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Namespace: "peticiones",
		Name:      "load_duration_seconds",
		Help:      "Time spent fetching and normalizing the CSV",
	})

	rowsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "peticiones",
		Name:      "rows_loaded",
		Help:      "Row count of the most recent successful load",
	})
)
