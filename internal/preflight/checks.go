package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"cornerman/internal/sportarr"
)

// CheckServer verifies that the Sportarr API is reachable and the key is
// valid. It uses a 5-second timeout and a single attempt.
func CheckServer(ctx context.Context, baseURL, apiKey string) Result {
	const name = "Sportarr"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := sportarr.New(base,
		sportarr.WithAPIKey(strings.TrimSpace(apiKey)),
		sportarr.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}

	err = client.Ping(checkCtx)
	if err == nil {
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	}
	var statusErr *sportarr.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return Result{Name: name, Detail: "auth failed (invalid api key)"}
		default:
			return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%d)", statusErr.Code)}
		}
	}
	return Result{Name: name, Detail: summarizeTransportError(err)}
}

// CheckNotifications verifies that the configured ntfy topic answers. The
// probe is a HEAD request so no message is published.
func CheckNotifications(ctx context.Context, topicURL string) Result {
	const name = "Notifications"

	topic := strings.TrimRight(strings.TrimSpace(topicURL), "/")
	if topic == "" {
		return Result{Name: name, Detail: "missing ntfy topic"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, topic, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeTransportError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return Result{Name: name, Passed: true, Detail: "ntfy topic reachable"}
	}
	return Result{Name: name, Detail: fmt.Sprintf("ntfy returned %d", resp.StatusCode)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeTransportError produces a human-readable summary for connectivity
// failures.
func summarizeTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (server unresponsive)"
	}
	return fmt.Sprintf("unreachable (%v)", err)
}
