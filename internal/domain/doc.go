// Package domain contains the product listing model produced by the
// generation pipeline and the requests that drive it. It has no knowledge of
// backends, transports, or storage.
package domain
