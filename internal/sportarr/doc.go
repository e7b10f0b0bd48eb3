// Package sportarr implements the HTTP client for the Sportarr server API:
// indexer searches, release grabs, part-file listings, rename preview and
// apply, and the health probe used by preflight checks.
package sportarr
