// Package logs reads the daemon's run log for the CLI. It tails the last N
// lines with bounded memory and can follow the file for new lines, polling
// rather than relying on filesystem notifications so it works on any mount.
package logs
