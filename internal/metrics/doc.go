// Package metrics records build and stage metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a caller asks for them:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	service := build.NewService(...).WithRecorder(recorder)
//
// A CLI build is short lived, so Prometheus metrics are not served over HTTP.
// WriteTextfile stores the gathered registry in the text exposition format for a
// node_exporter textfile collector or a CI artifact.
package metrics
