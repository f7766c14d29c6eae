// Package middleware contains HTTP middleware for tracing, admin
// authentication, and request metrics.
package middleware
