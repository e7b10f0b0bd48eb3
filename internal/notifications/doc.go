// Package notifications delivers workflow events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Grab outcomes are the only milestones this workflow reports, so
// the Service interface stays deliberately small.
//
// Extend this package if you need alternative transports; all session code
// depends only on the Service interface.
package notifications
