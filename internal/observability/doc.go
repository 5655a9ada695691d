// Package observability builds the process logger and the Prometheus
// collectors shared by the HTTP middleware.
package observability
