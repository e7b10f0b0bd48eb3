package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cornerman/internal/config"
	"cornerman/internal/services"
)

const userAgent = "Cornerman/0.1.0"

// Service defines the notification surface exposed to the session workflow.
type Service interface {
	NotifyGrabbed(ctx context.Context, releaseTitle string) error
	NotifyGrabFailed(ctx context.Context, releaseTitle, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		grabs:    cfg.Notifications.Grabs,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	grabs    bool
	errors   bool
}

func (n *ntfyService) NotifyGrabbed(ctx context.Context, releaseTitle string) error {
	if !n.grabs {
		return nil
	}
	releaseTitle = strings.TrimSpace(releaseTitle)
	data := payload{
		title:   "Cornerman - Release Grabbed",
		message: fmt.Sprintf("🥊 Sent to download client: %s", releaseTitle),
		tags:    []string{"cornerman", "grab", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyGrabFailed(ctx context.Context, releaseTitle, reason string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Grab failed")
	if releaseTitle = strings.TrimSpace(releaseTitle); releaseTitle != "" {
		builder.WriteString(" for ")
		builder.WriteString(releaseTitle)
	}
	builder.WriteString(": ")
	if reason = strings.TrimSpace(reason); reason != "" {
		builder.WriteString(reason)
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Cornerman - Grab Failed",
		message:  builder.String(),
		tags:     []string{"cornerman", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Cornerman - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"cornerman", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "notifications", "ntfy send", "Failed to deliver notification", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		detail := fmt.Sprintf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return services.Wrap(services.ErrUpstream, "notifications", "ntfy send", detail, nil)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyGrabbed(context.Context, string) error            { return nil }
func (noopService) NotifyGrabFailed(context.Context, string, string) error { return nil }
func (noopService) TestNotification(context.Context) error                 { return nil }
