/*
Package observability exposes Prometheus metrics for the formatter bot.

It counts handled events by kind and outcome and times every catalog call.
Metrics are registered on a caller-supplied registry so tests can use a fresh one.
*/
package observability
