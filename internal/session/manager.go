package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"cornerman/internal/logging"
	"cornerman/internal/notifications"
	"cornerman/internal/release"
	"cornerman/internal/services"
	"cornerman/internal/sportarr"
)

// Client is the slice of the Sportarr API the workflow needs. The concrete
// implementation lives in internal/sportarr; tests substitute fakes.
type Client interface {
	Search(ctx context.Context, eventID int64, part string) ([]release.Candidate, error)
	Grab(ctx context.Context, req sportarr.GrabRequest) (*sportarr.GrabReceipt, error)
	EventParts(ctx context.Context, eventID int64) ([]release.PartFile, error)
}

// Manager hosts the daemon's single session slot. All state lives behind mu;
// network calls happen with the lock released and their completions are
// committed only if the generation counter still matches, so responses that
// outlive a reset or close never leak into the next session.
type Manager struct {
	client   Client
	notifier notifications.Service
	logger   *slog.Logger

	mu           sync.Mutex
	generation   uint64
	open         bool
	sessionID    string
	target       Target
	state        State
	results      []release.Candidate
	files        []release.PartFile
	errorMessage string
	pending      *Confirmation
	downloading  int
}

func NewManager(client Client, notifier notifications.Service, logger *slog.Logger) *Manager {
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	return &Manager{
		client:      client,
		notifier:    notifier,
		logger:      logging.NewComponentLogger(logger, "session"),
		state:       StateIdle,
		downloading: -1,
	}
}

// Open starts a session for the target, replacing whatever session existed
// before. The event's existing files are fetched so result rows can be
// annotated against them; a failure there degrades to an empty listing.
func (m *Manager) Open(ctx context.Context, target Target) (Snapshot, error) {
	if target.EventID <= 0 {
		return Snapshot{}, fmt.Errorf("event id must be positive, got %d", target.EventID)
	}
	target.Part = release.CanonicalPart(target.Part)

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.open = true
	m.sessionID = uuid.NewString()
	m.target = target
	m.state = StateIdle
	m.results = nil
	m.files = nil
	m.errorMessage = ""
	m.pending = nil
	m.downloading = -1
	sessionID := m.sessionID
	m.mu.Unlock()

	ctx = m.annotate(ctx, sessionID, target)
	log := logging.WithContext(ctx, m.logger)
	log.Info("slot opened")

	files, err := m.client.EventParts(ctx, target.EventID)
	if err != nil {
		log.Warn("event file listing unavailable", "error", err)
		files = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation == gen {
		m.files = files
	}
	return m.snapshotLocked(), nil
}

// Search queries the indexers for the session target. Only one search may be
// in flight at a time. A failed search is not an RPC error: it is absorbed
// into the session state so the operator sees the message next to the slot.
func (m *Manager) Search(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return Snapshot{}, ErrNoSession
	}
	if m.state == StateSearching {
		m.mu.Unlock()
		return Snapshot{}, ErrSearchInFlight
	}
	m.state = StateSearching
	m.errorMessage = ""
	m.pending = nil
	gen := m.generation
	target := m.target
	sessionID := m.sessionID
	m.mu.Unlock()

	ctx = m.annotate(ctx, sessionID, target)
	log := logging.WithContext(ctx, m.logger)
	log.Info("searching indexers")
	results, err := m.client.Search(ctx, target.EventID, target.Part)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		log.Debug("discarding search response for superseded session")
		return m.snapshotLocked(), nil
	}
	if err != nil {
		log.Warn("search failed", "error", err)
		m.state = StateFailed
		m.errorMessage = searchFailedMessage
		m.results = nil
		return m.snapshotLocked(), nil
	}
	log.Info("search completed", "results", len(results))
	m.state = StatePopulated
	m.results = results
	return m.snapshotLocked(), nil
}

// RequestGrab starts acquiring the result at index. Approved candidates go
// straight to the download client; blocklisted ones park as a pending
// confirmation and wait for Confirm or Cancel.
func (m *Manager) RequestGrab(ctx context.Context, index int) (GrabOutcome, error) {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return GrabOutcome{}, ErrNoSession
	}
	if m.state == StateSearching {
		m.mu.Unlock()
		return GrabOutcome{}, ErrSearchInFlight
	}
	if m.downloading != -1 {
		m.mu.Unlock()
		return GrabOutcome{}, ErrGrabInFlight
	}
	if index < 0 || index >= len(m.results) {
		m.mu.Unlock()
		return GrabOutcome{}, ErrBadIndex
	}
	candidate := m.results[index]
	if !candidate.Downloadable() {
		m.mu.Unlock()
		return GrabOutcome{}, ErrNotDownloadable
	}
	if candidate.Blocklisted {
		m.pending = &Confirmation{Index: index, Candidate: candidate}
		m.mu.Unlock()
		m.logger.Info("grab needs override confirmation", "title", candidate.Title, "reason", candidate.BlocklistReason)
		return GrabOutcome{Pending: true, Title: candidate.Title}, nil
	}
	m.pending = nil
	m.downloading = index
	gen := m.generation
	target := m.target
	sessionID := m.sessionID
	m.mu.Unlock()

	return m.executeGrab(m.annotate(ctx, sessionID, target), gen, candidate, target.EventID, false)
}

// Confirm overrides the blocklist for the pending candidate and grabs it.
func (m *Manager) Confirm(ctx context.Context) (GrabOutcome, error) {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return GrabOutcome{}, ErrNoSession
	}
	if m.pending == nil {
		m.mu.Unlock()
		return GrabOutcome{}, ErrNoConfirmation
	}
	confirmation := *m.pending
	m.pending = nil
	m.downloading = confirmation.Index
	gen := m.generation
	target := m.target
	sessionID := m.sessionID
	m.mu.Unlock()

	ctx = m.annotate(ctx, sessionID, target)
	logging.WithContext(ctx, m.logger).Info("blocklist override confirmed", "title", confirmation.Candidate.Title)
	return m.executeGrab(ctx, gen, confirmation.Candidate, target.EventID, true)
}

// Cancel discards the pending confirmation without touching the server.
func (m *Manager) Cancel() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return Snapshot{}, ErrNoSession
	}
	if m.pending == nil {
		return Snapshot{}, ErrNoConfirmation
	}
	m.logger.Info("blocklist override cancelled", "title", m.pending.Candidate.Title)
	m.pending = nil
	return m.snapshotLocked(), nil
}

// Close discards the session slot.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return ErrNoSession
	}
	m.logger.Info("slot closed", "session_id", m.sessionID)
	m.closeLocked()
	return nil
}

// Current reports the session state, open or not.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// annotate stamps the context with the session identity so log lines carry
// the standard fields alongside any IPC correlation id already present.
func (m *Manager) annotate(ctx context.Context, sessionID string, target Target) context.Context {
	ctx = services.WithEventID(ctx, target.EventID)
	ctx = services.WithPart(ctx, target.Part)
	return services.WithSessionID(ctx, sessionID)
}

func (m *Manager) executeGrab(ctx context.Context, gen uint64, candidate release.Candidate, eventID int64, override bool) (GrabOutcome, error) {
	log := logging.WithContext(ctx, m.logger)
	req := sportarr.GrabRequest{
		Candidate:         candidate,
		EventID:           eventID,
		OverrideBlocklist: override,
	}
	receipt, err := m.client.Grab(ctx, req)

	m.mu.Lock()
	stale := m.generation != gen
	if !stale {
		m.downloading = -1
	}
	if err != nil {
		message := grabFailureMessage(err)
		if !stale {
			m.errorMessage = message
		}
		m.mu.Unlock()
		if !stale {
			log.Warn("grab failed", "title", candidate.Title, "error", err)
			if notifyErr := m.notifier.NotifyGrabFailed(ctx, candidate.Title, message); notifyErr != nil {
				log.Warn("grab failure notification failed", "error", notifyErr)
			}
		}
		return GrabOutcome{Title: candidate.Title, Message: message}, nil
	}
	if !stale {
		m.closeLocked()
	}
	m.mu.Unlock()

	outcome := GrabOutcome{Grabbed: true, Title: candidate.Title}
	if receipt != nil {
		outcome.DownloadID = receipt.DownloadID
	}
	if !stale {
		log.Info("release grabbed", "title", candidate.Title, "download_id", outcome.DownloadID)
		if notifyErr := m.notifier.NotifyGrabbed(ctx, candidate.Title); notifyErr != nil {
			log.Warn("grab notification failed", "error", notifyErr)
		}
	}
	return outcome, nil
}

// closeLocked resets every slot field and bumps the generation so in-flight
// responses for the old session are discarded when they land.
func (m *Manager) closeLocked() {
	m.generation++
	m.open = false
	m.sessionID = ""
	m.target = Target{}
	m.state = StateIdle
	m.results = nil
	m.files = nil
	m.errorMessage = ""
	m.pending = nil
	m.downloading = -1
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		Open:        m.open,
		SessionID:   m.sessionID,
		Target:      m.target,
		State:       m.state,
		Error:       m.errorMessage,
		Downloading: m.downloading,
	}
	if len(m.results) > 0 {
		snap.Results = append([]release.Candidate(nil), m.results...)
	}
	if len(m.files) > 0 {
		snap.Files = append([]release.PartFile(nil), m.files...)
	}
	if m.pending != nil {
		confirmation := *m.pending
		snap.Confirmation = &confirmation
	}
	return snap
}

func grabFailureMessage(err error) string {
	var statusErr *sportarr.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return grabFailedMessage
}
