package sportarr

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"cornerman/internal/release"
)

// GrabRequest is the payload for the grab endpoint: the full candidate plus
// the target event identity and the blocklist override flag. Embedding keeps
// the candidate fields flattened on the wire.
type GrabRequest struct {
	release.Candidate
	EventID           int64 `json:"eventId"`
	OverrideBlocklist bool  `json:"overrideBlocklist"`
}

// GrabReceipt identifies the download started by a successful grab.
type GrabReceipt struct {
	DownloadID string `json:"downloadId"`
}

// RenameScope selects which files a rename preview or apply covers.
// Exactly one selector must be set.
type RenameScope struct {
	Organization string
	EventID      int64
	FightCardID  int64
}

func (s RenameScope) values() (url.Values, error) {
	params := url.Values{}
	selectors := 0
	if org := strings.TrimSpace(s.Organization); org != "" {
		params.Set("organization", org)
		selectors++
	}
	if s.EventID > 0 {
		params.Set("eventId", strconv.FormatInt(s.EventID, 10))
		selectors++
	}
	if s.FightCardID > 0 {
		params.Set("fightCardId", strconv.FormatInt(s.FightCardID, 10))
		selectors++
	}
	if selectors != 1 {
		return nil, errors.New("rename scope requires exactly one of organization, event id, or fight card id")
	}
	return params, nil
}

func (s RenameScope) payload() (renameApplyPayload, error) {
	if _, err := s.values(); err != nil {
		return renameApplyPayload{}, err
	}
	return renameApplyPayload{
		Organization: strings.TrimSpace(s.Organization),
		EventID:      s.EventID,
		FightCardID:  s.FightCardID,
	}, nil
}

type renameApplyPayload struct {
	Organization string `json:"organization,omitempty"`
	EventID      int64  `json:"eventId,omitempty"`
	FightCardID  int64  `json:"fightCardId,omitempty"`
}

// RenameChange describes one field difference between the existing and the
// proposed file name.
type RenameChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// RenameItem is one row of a rename preview or the record of an applied rename.
type RenameItem struct {
	ExistingPath string         `json:"existingPath"`
	NewPath      string         `json:"newPath"`
	Changes      []RenameChange `json:"changes,omitempty"`
}
