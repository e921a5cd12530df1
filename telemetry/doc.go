// Package telemetry exports search activity as Prometheus metrics.
//
// A Collector registers its metrics once on a caller-supplied
// prometheus.Registerer. Collector.Observer binds it to one strategy and
// returns a session.Observer that counts every event and, through
// session.Finisher, records the outcome and path length when the run ends.
//
// Metrics:
//
//	gridpath_search_events_total{strategy,kind}
//	gridpath_sessions_total{strategy,outcome}
//	gridpath_path_length{strategy}            histogram of path coordinates
//	gridpath_expanded_per_session{strategy}   histogram of Expanded events
package telemetry
