// Package catalog resolves product category ids to their display names
// using the storefront's existing catalog tables. It is read-only.
package catalog
