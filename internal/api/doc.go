// Package api exposes the generation pipeline over HTTP. It decodes and
// validates admin requests, resolves category names, calls the
// generator, and maps pipeline errors to status codes without leaking
// backend output to clients.
package api
