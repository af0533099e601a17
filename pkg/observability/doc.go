/*
Package observability provides tools for monitoring the questionnaire engine.

It turns lifecycle hooks into Prometheus counters and structured log lines,
and combines several hook sets into one.
*/
package observability
