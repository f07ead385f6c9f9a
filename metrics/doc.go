// Package metrics holds the Prometheus collectors shared by the store
// decorators, the database layer and the web front.
//
// Collectors are package globals created with promauto, so importing the
// package registers them with prometheus.DefaultRegisterer. cmd/web serves
// them at /metrics.
package metrics
