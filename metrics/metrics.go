package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeAccepted labels records that survived ingestion.
	OutcomeAccepted = "accepted"
	// OutcomeDropped labels records skipped during ingestion.
	OutcomeDropped = "dropped"
)

var (
	recordsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "passenger_stats",
			Name:      "records_ingested_total",
			Help:      "Records seen during ingestion, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "passenger_stats",
			Name:      "queries_total",
			Help:      "Period queries analysed, partitioned by period kind.",
		},
		[]string{"kind"},
	)

	emptyResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "passenger_stats",
			Name:      "empty_results_total",
			Help:      "Period queries that matched no record.",
		},
	)

	dateParseErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "passenger_stats",
			Name:      "date_parse_errors_total",
			Help:      "Records excluded from a query because their start date did not parse.",
		},
	)

	queryDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "passenger_stats",
			Name:      "query_seconds",
			Help:      "Time spent filtering and aggregating one period query.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)

// Register attaches passenger-stats collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		recordsIngestedTotal,
		queriesTotal,
		emptyResultsTotal,
		dateParseErrorsTotal,
		queryDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveIngestion records how many records a load accepted and dropped.
func ObserveIngestion(accepted, dropped int) {
	recordsIngestedTotal.WithLabelValues(OutcomeAccepted).Add(float64(accepted))
	recordsIngestedTotal.WithLabelValues(OutcomeDropped).Add(float64(dropped))
}

// ObserveQuery records one analysed period query.
func ObserveQuery(kind string, matched int, duration time.Duration) {
	queriesTotal.WithLabelValues(kind).Inc()
	if matched == 0 {
		emptyResultsTotal.Inc()
	}
	if duration < 0 {
		duration = 0
	}
	queryDurationSeconds.Observe(duration.Seconds())
}

// ObserveDateParseError counts a record skipped for an unparseable date.
func ObserveDateParseError() {
	dateParseErrorsTotal.Inc()
}
