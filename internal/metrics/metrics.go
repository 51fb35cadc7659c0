// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package metrics exposes Prometheus instrumentation for the build pipeline
// and query engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// documentsIndexedTotal counts documents successfully segmented and
	// tokenized into the index, by index variant.
	documentsIndexedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goir",
		Subsystem: "build",
		Name:      "documents_indexed_total",
		Help:      "Total documents indexed, by index variant",
	}, []string{"variant"})

	// documentsSkippedTotal counts documents rejected before indexing.
	// Labels: reason (unreadable, invalid_utf8)
	documentsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goir",
		Subsystem: "build",
		Name:      "documents_skipped_total",
		Help:      "Total documents skipped during a build, by reason",
	}, []string{"reason"})

	// buildDurationSeconds measures end-to-end corpus build latency.
	buildDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "goir",
		Subsystem: "build",
		Name:      "duration_seconds",
		Help:      "Time to build the full index from a corpus",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})

	// queryLatencySeconds measures query evaluation latency, by variant.
	queryLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "goir",
		Subsystem: "query",
		Name:      "latency_seconds",
		Help:      "Query evaluation latency, by index variant",
		Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"variant"})

	// queryResultsTotal counts documents returned per query, by variant.
	queryResultsTotal = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "goir",
		Subsystem: "query",
		Name:      "results_count",
		Help:      "Number of documents returned per query, by index variant",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	}, []string{"variant"})

	// queryErrorsTotal counts failed query evaluations, by variant and cause.
	queryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "goir",
		Subsystem: "query",
		Name:      "errors_total",
		Help:      "Total query evaluation errors, by index variant and error",
	}, []string{"variant", "error"})
)

// RecordDocumentIndexed records one document indexed into variant.
func RecordDocumentIndexed(variant string) {
	documentsIndexedTotal.WithLabelValues(variant).Inc()
}

// RecordDocumentSkipped records one document rejected before indexing.
//
// Inputs:
//   - reason: why the document was skipped ("unreadable", "invalid_utf8").
func RecordDocumentSkipped(reason string) {
	documentsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordBuildDuration records the wall-clock time of one full corpus build.
func RecordBuildDuration(seconds float64) {
	buildDurationSeconds.Observe(seconds)
}

// RecordQuery records the latency and result count of one query evaluation.
func RecordQuery(variant string, seconds float64, resultCount int) {
	queryLatencySeconds.WithLabelValues(variant).Observe(seconds)
	queryResultsTotal.WithLabelValues(variant).Observe(float64(resultCount))
}

// RecordQueryError records a failed query evaluation.
//
// Inputs:
//   - variant: the index variant that was queried.
//   - errKind: a short, low-cardinality label for the failure
//     (e.g. "unsupported_operation", "query_error").
func RecordQueryError(variant, errKind string) {
	queryErrorsTotal.WithLabelValues(variant, errKind).Inc()
}
