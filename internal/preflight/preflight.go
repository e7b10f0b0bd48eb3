package preflight

import (
	"context"

	"cornerman/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// The notification check only runs when an ntfy topic is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Log directory (always checked, the daemon writes its run log there)
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	// Sportarr server (always checked)
	results = append(results, CheckServer(ctx, cfg.Server.URL, cfg.Server.APIKey))

	// Notifications
	if cfg.Notifications.NtfyTopic != "" {
		results = append(results, CheckNotifications(ctx, cfg.Notifications.NtfyTopic))
	}

	return results
}
