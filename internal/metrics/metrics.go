// Package metrics provides Prometheus metrics for the smart-plug backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReadingsIngested tracks the total number of telemetry readings accepted
	ReadingsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartplug_readings_ingested_total",
		Help: "Total number of telemetry readings accepted and stored",
	})

	// ReadingsRejected tracks rejected submissions by reason
	ReadingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartplug_readings_rejected_total",
		Help: "Total number of telemetry submissions rejected",
	}, []string{"reason"})

	// IngestDuration tracks how long a submission takes end to end
	IngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartplug_ingest_duration_seconds",
		Help:    "Duration of telemetry ingestion in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// LastPower tracks the last submitted power sample per device
	LastPower = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "smartplug_last_power_watts",
		Help: "Last submitted power sample per device in watts",
	}, []string{"device_id"})
)
