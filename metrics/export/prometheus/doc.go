// Package prometheus renders console metrics in the Prometheus text exposition
// format.
//
// [NewExporter] reads a console's snapshot on every scrape. Counters are named
// goconsole_*_total; the guard latency histogram is goconsole_guard_latency_seconds.
// Nothing is registered globally; callers mount [Exporter.Handler].
package prometheus
