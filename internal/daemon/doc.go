// Package daemon coordinates the long-running Cornerman process and system
// integration points.
//
// It wires configuration, the Sportarr client, notifications, and the
// session manager into a single lifecycle with flock-based locking to
// prevent multiple instances. The daemon exposes session operations to the
// IPC layer, relays rename previews to Sportarr, and reports combined
// runtime status including preflight check results.
//
// Keep orchestration logic here: session semantics live in
// internal/session while the daemon focuses on startup, shutdown, and high
// level coordination.
package daemon
