// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

// Package metrics provides Prometheus metrics for observability.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format.
//
// HTTP metrics:
//   - api_requests_total: Total API requests (counter)
//     Labels: method, endpoint, status
//   - api_request_duration_seconds: Request latency (histogram)
//     Labels: method, endpoint
//   - api_active_requests: Active requests (gauge)
//   - api_rate_limit_hits_total: Rate-limited requests (counter)
//
// Ingestion metrics:
//   - ingest_uploads_total: Save uploads by outcome (counter)
//     Labels: result (accepted, parse_error, not_newer, error)
//   - ingest_chests_total: Chests written by accepted uploads (counter)
//   - ingest_items_total: Items written by accepted uploads (counter)
//   - ingest_item_blob_failures_total: Chest item blobs that failed to
//     decode and were skipped (counter)
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chesthound/chesthound/internal/database"
	"github.com/chesthound/chesthound/internal/savefile"
)

// Upload outcome labels for IngestUploads.
const (
	IngestResultAccepted   = "accepted"
	IngestResultParseError = "parse_error"
	IngestResultNotNewer   = "not_newer"
	IngestResultError      = "error"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate-limited API requests",
		},
	)

	// Ingestion Metrics
	IngestUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_uploads_total",
			Help: "Total number of save uploads by outcome",
		},
		[]string{"result"},
	)

	IngestChests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_chests_total",
			Help: "Total number of chests written by accepted uploads",
		},
	)

	IngestItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_items_total",
			Help: "Total number of items written by accepted uploads",
		},
	)

	IngestItemBlobFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_item_blob_failures_total",
			Help: "Total number of chest item blobs that failed to decode",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate-limited request
func RecordRateLimitHit() {
	APIRateLimitHits.Inc()
}

// RecordIngest records an upload outcome
func RecordIngest(result string) {
	IngestUploads.WithLabelValues(result).Inc()
}

// RecordIngestError records an upload failure, categorized by error type
func RecordIngestError(err error) {
	var notNewer *database.NotNewerError
	var parseErr *savefile.ParseError
	switch {
	case errors.As(err, &notNewer):
		RecordIngest(IngestResultNotNewer)
	case errors.As(err, &parseErr):
		RecordIngest(IngestResultParseError)
	default:
		RecordIngest(IngestResultError)
	}
}

// RecordInventory records the write volume of an accepted upload
func RecordInventory(chests, items int) {
	IngestChests.Add(float64(chests))
	IngestItems.Add(float64(items))
}

// RecordItemBlobFailure records a chest item blob that failed to decode
func RecordItemBlobFailure() {
	IngestItemBlobFailures.Inc()
}
