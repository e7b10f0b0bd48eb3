package ipc

import (
	"time"

	"cornerman/internal/session"
	"cornerman/internal/sportarr"
)

// SessionSnapshot mirrors the daemon session state for IPC callers.
type SessionSnapshot = session.Snapshot

// GrabOutcome mirrors the session grab result for IPC callers.
type GrabOutcome = session.GrabOutcome

// RenameItem mirrors the Sportarr rename DTO for IPC callers.
type RenameItem = sportarr.RenameItem

// OpenRequest starts a session for an event, optionally scoped to one part.
type OpenRequest struct {
	EventID int64  `json:"event_id"`
	Part    string `json:"part"`
}

// OpenResponse returns the fresh session state.
type OpenResponse struct {
	Session SessionSnapshot `json:"session"`
}

// SearchRequest triggers an indexer search for the session target.
type SearchRequest struct{}

// SearchResponse returns the session state once the search settles.
type SearchResponse struct {
	Session SessionSnapshot `json:"session"`
}

// GrabRequest asks the daemon to acquire a result row (zero-based).
type GrabRequest struct {
	Index int `json:"index"`
}

// GrabResponse reports what the grab did.
type GrabResponse struct {
	Outcome GrabOutcome `json:"outcome"`
}

// ConfirmRequest approves the pending blocklist override.
type ConfirmRequest struct{}

// ConfirmResponse reports the grab outcome after the override.
type ConfirmResponse struct {
	Outcome GrabOutcome `json:"outcome"`
}

// CancelRequest discards the pending blocklist override.
type CancelRequest struct{}

// CancelResponse returns the session state after the cancel.
type CancelResponse struct {
	Session SessionSnapshot `json:"session"`
}

// CloseRequest discards the session slot.
type CloseRequest struct{}

// CloseResponse indicates close result.
type CloseResponse struct {
	Closed bool `json:"closed"`
}

// SessionRequest fetches the current session state.
type SessionRequest struct{}

// SessionResponse contains the current session state.
type SessionResponse struct {
	Session SessionSnapshot `json:"session"`
}

// RenamePreviewRequest previews pending renames for exactly one scope
// selector.
type RenamePreviewRequest struct {
	Organization string `json:"organization"`
	EventID      int64  `json:"event_id"`
	FightCardID  int64  `json:"fight_card_id"`
}

// RenamePreviewResponse lists the renames Sportarr would perform.
type RenamePreviewResponse struct {
	Items []RenameItem `json:"items"`
}

// RenameApplyRequest executes the renames for exactly one scope selector.
type RenameApplyRequest struct {
	Organization string `json:"organization"`
	EventID      int64  `json:"event_id"`
	FightCardID  int64  `json:"fight_card_id"`
}

// RenameApplyResponse lists the renames Sportarr performed.
type RenameApplyResponse struct {
	Items []RenameItem `json:"items"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// Check describes one readiness probe result.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// StatusResponse represents combined daemon/session status information.
type StatusResponse struct {
	Running    bool            `json:"running"`
	PID        int             `json:"pid"`
	StartedAt  time.Time       `json:"started_at"`
	LockPath   string          `json:"lock_path"`
	SocketPath string          `json:"socket_path"`
	LogPath    string          `json:"log_path"`
	Session    SessionSnapshot `json:"session"`
	Checks     []Check         `json:"checks"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// StopRequest asks the daemon process to shut down.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopping bool `json:"stopping"`
}
