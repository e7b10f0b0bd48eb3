// Package services defines shared utilities consumed by the session workflow
// and the external integrations around it.
//
// Key responsibilities:
//   - Context helpers that stamp event IDs, part names, session IDs, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure detail
//     consistent across the Sportarr client, the daemon, and the CLI.
//
// Use these helpers when wiring new workflow logic so operational behaviour
// (error handling, observability) stays uniform across the codebase.
package services
