package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"cornerman/internal/config"
	"cornerman/internal/notifications"
	"cornerman/internal/preflight"
	"cornerman/internal/session"
	"cornerman/internal/sportarr"
)

// Daemon hosts the session slot and enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *sportarr.Client
	notifier notifications.Service
	sessions *session.Manager
	logPath  string

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	StartedAt    time.Time
	LockFilePath string
	SocketPath   string
	LogPath      string
	Session      session.Snapshot
	Checks       []preflight.Result
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, client *sportarr.Client, notifier notifications.Service, logger *slog.Logger, logPath string) (*Daemon, error) {
	if cfg == nil || client == nil || logger == nil {
		return nil, errors.New("daemon requires config, client, and logger")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "cornermand.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		notifier:   notifier,
		sessions:   session.NewManager(client, notifier, logger),
		logPath:    logPath,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
		shutdownCh: make(chan struct{}),
	}, nil
}

// Start acquires the daemon lock and marks the daemon running.
func (d *Daemon) Start() error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another cornerman daemon instance is already running")
	}

	d.startedAt = time.Now().UTC()
	d.running.Store(true)
	d.logger.Info("cornerman daemon started", "lock", d.lockPath)
	return nil
}

// Stop releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", "error", err)
	}
	d.running.Store(false)
	d.logger.Info("cornerman daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// RequestShutdown asks the daemon process to exit. The run loop watches
// ShutdownRequested and tears down when it fires.
func (d *Daemon) RequestShutdown() {
	d.shutdownOnce.Do(func() {
		close(d.shutdownCh)
	})
}

// ShutdownRequested fires once a shutdown has been requested via IPC.
func (d *Daemon) ShutdownRequested() <-chan struct{} {
	return d.shutdownCh
}

// OpenSession starts a session for the event, optionally scoped to one part.
func (d *Daemon) OpenSession(ctx context.Context, eventID int64, part string) (session.Snapshot, error) {
	return d.sessions.Open(ctx, session.Target{EventID: eventID, Part: part})
}

// SearchSession queries the indexers for the current session target.
func (d *Daemon) SearchSession(ctx context.Context) (session.Snapshot, error) {
	return d.sessions.Search(ctx)
}

// GrabRelease acquires the result at the zero-based index.
func (d *Daemon) GrabRelease(ctx context.Context, index int) (session.GrabOutcome, error) {
	return d.sessions.RequestGrab(ctx, index)
}

// ConfirmGrab approves the pending blocklist override.
func (d *Daemon) ConfirmGrab(ctx context.Context) (session.GrabOutcome, error) {
	return d.sessions.Confirm(ctx)
}

// CancelGrab discards the pending blocklist override.
func (d *Daemon) CancelGrab() (session.Snapshot, error) {
	return d.sessions.Cancel()
}

// CloseSession discards the session slot.
func (d *Daemon) CloseSession() error {
	return d.sessions.Close()
}

// SessionSnapshot reports the current session state.
func (d *Daemon) SessionSnapshot() session.Snapshot {
	return d.sessions.Current()
}

// RenamePreview asks Sportarr which files a rename pass would touch.
func (d *Daemon) RenamePreview(ctx context.Context, scope sportarr.RenameScope) ([]sportarr.RenameItem, error) {
	return d.client.RenamePreview(ctx, scope)
}

// RenameApply executes the rename pass on Sportarr.
func (d *Daemon) RenameApply(ctx context.Context, scope sportarr.RenameScope) ([]sportarr.RenameItem, error) {
	return d.client.RenameApply(ctx, scope)
}

// TestNotification triggers a test notification using the current configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if d.cfg == nil {
		return false, "configuration unavailable", errors.New("configuration unavailable")
	}
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// Status returns the current daemon status including preflight results.
func (d *Daemon) Status(ctx context.Context) Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		StartedAt:    d.startedAt,
		LockFilePath: d.lockPath,
		SocketPath:   d.cfg.SocketPath(),
		LogPath:      d.logPath,
		Session:      d.sessions.Current(),
		Checks:       preflight.RunAll(ctx, d.cfg),
	}
}
