package session

import (
	"errors"

	"cornerman/internal/release"
)

// State identifies where the search workflow sits in its lifecycle.
type State string

const (
	// StateIdle means no search has been issued for the current target.
	StateIdle State = "idle"
	// StateSearching means a search is in flight.
	StateSearching State = "searching"
	// StatePopulated means the last search completed and results (possibly
	// none) are available.
	StatePopulated State = "populated"
	// StateFailed means the last search failed; Error carries the
	// user-facing message.
	StateFailed State = "failed"
)

// Target identifies what the workflow is searching for. An empty Part means
// the search spans every part of the event.
type Target struct {
	EventID int64  `json:"eventId"`
	Part    string `json:"part,omitempty"`
}

// Confirmation records the blocklisted candidate awaiting an operator
// override decision.
type Confirmation struct {
	Index     int               `json:"index"`
	Candidate release.Candidate `json:"candidate"`
}

// Snapshot is a point-in-time copy of the session state, safe for rendering
// after the manager's lock has been released.
type Snapshot struct {
	Open         bool                `json:"open"`
	SessionID    string              `json:"sessionId,omitempty"`
	Target       Target              `json:"target"`
	State        State               `json:"state"`
	Results      []release.Candidate `json:"results,omitempty"`
	Files        []release.PartFile  `json:"files,omitempty"`
	Error        string              `json:"error,omitempty"`
	Confirmation *Confirmation       `json:"confirmation,omitempty"`
	// Downloading is the result index of the in-flight grab, -1 when none.
	Downloading int `json:"downloading"`
}

// GrabOutcome reports what a grab request did.
type GrabOutcome struct {
	// Pending is true when the candidate is blocklisted and the grab now
	// waits for an explicit override confirmation.
	Pending bool `json:"pending"`
	// Grabbed is true when the release was sent to the download client.
	Grabbed    bool   `json:"grabbed"`
	Title      string `json:"title,omitempty"`
	DownloadID string `json:"downloadId,omitempty"`
	// Message is the user-facing explanation when the grab was attempted
	// and failed.
	Message string `json:"message,omitempty"`
}

// Sentinel errors for operation preconditions. They describe operator
// mistakes, not transport failures, and are safe to print verbatim.
var (
	ErrNoSession       = errors.New("no open session")
	ErrSearchInFlight  = errors.New("search already in progress")
	ErrGrabInFlight    = errors.New("grab already in progress")
	ErrNoConfirmation  = errors.New("no pending confirmation")
	ErrBadIndex        = errors.New("result row out of range")
	ErrNotDownloadable = errors.New("release is neither approved nor blocklisted")
)

const (
	searchFailedMessage = "Failed to search indexers. Please try again."
	grabFailedMessage   = "Failed to grab release. Please try again."
)
