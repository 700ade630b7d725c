// Package otel exposes console metrics through OpenTelemetry observable instruments.
//
// [NewExporter] registers one Int64ObservableCounter per console counter and one
// Int64ObservableGauge per latency bucket, all fed by a single callback that takes a
// snapshot per collection. The caller owns the MeterProvider.
package otel
