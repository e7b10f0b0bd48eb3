package preflight

import (
	"context"
	"strings"

	"cornerman/internal/config"
)

// CheckServerFromConfig evaluates Sportarr status from config and connectivity.
func CheckServerFromConfig(cfg *config.Config) Result {
	const name = "Sportarr"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Server.URL) == "" {
		return Result{Name: name, Detail: "Missing URL"}
	}
	if strings.TrimSpace(cfg.Server.APIKey) == "" {
		return Result{Name: name, Detail: "Missing API key"}
	}
	check := CheckServer(context.Background(), cfg.Server.URL, cfg.Server.APIKey)
	if check.Passed {
		return Result{Name: name, Passed: true, Detail: check.Detail}
	}
	return Result{Name: name, Detail: check.Detail}
}

// CheckNotificationsFromConfig evaluates notification status from config and
// connectivity. An unset topic is a valid state, not a failure.
func CheckNotificationsFromConfig(cfg *config.Config) Result {
	const name = "Notifications"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	check := CheckNotifications(context.Background(), cfg.Notifications.NtfyTopic)
	if check.Passed {
		return Result{Name: name, Passed: true, Detail: check.Detail}
	}
	return Result{Name: name, Detail: check.Detail}
}
