// Package preflight provides readiness checks for the Sportarr server,
// the ntfy notification backend, and the filesystem paths Cornerman
// depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll once at startup and logs a readiness report,
//     so a misconfigured API key surfaces before the first search.
//   - The CLI "cornerman status" command uses the FromConfig variants to
//     display service health alongside the session state.
package preflight
