// Package session owns the release search-and-acquisition workflow hosted by
// the daemon: one session slot at a time, reset whenever the target event or
// part changes, searched on demand, and closed when a grab succeeds.
//
// The Manager guards all state with a mutex but never holds it across
// network calls; a generation counter makes sure responses that outlive a
// reset or close are discarded instead of leaking into the next session.
package session
