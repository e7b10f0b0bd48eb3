package release

import "time"

// FormatMatch records one custom-format rule that fired for a candidate.
type FormatMatch struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Candidate is one indexer search hit as returned by Sportarr. Scores and
// policy outcomes are computed upstream; this side only displays them.
// Quality, codec, and source are empty when the indexer did not report them.
type Candidate struct {
	Title             string        `json:"title"`
	GUID              string        `json:"guid"`
	Indexer           string        `json:"indexer"`
	DownloadURL       string        `json:"downloadUrl"`
	Size              int64         `json:"size"`
	PublishDate       time.Time     `json:"publishDate"`
	Seeders           *int          `json:"seeders,omitempty"`
	Leechers          *int          `json:"leechers,omitempty"`
	Quality           string        `json:"quality,omitempty"`
	Codec             string        `json:"codec,omitempty"`
	Source            string        `json:"source,omitempty"`
	Score             int           `json:"score"`
	QualityScore      int           `json:"qualityScore"`
	CustomFormatScore int           `json:"customFormatScore"`
	Approved          bool          `json:"approved"`
	Rejections        []string      `json:"rejections,omitempty"`
	MatchedFormats    []FormatMatch `json:"matchedFormats,omitempty"`
	Blocklisted       bool          `json:"isBlocklisted"`
	BlocklistReason   string        `json:"blocklistReason,omitempty"`
}

// Downloadable reports whether a grab may be started for this candidate.
// Blocklisted candidates stay actionable so the operator can override;
// candidates that are neither approved nor blocklisted are inert.
func (c Candidate) Downloadable() bool {
	return c.Approved || c.Blocklisted
}

// PartFile describes a file already acquired for some part of an event.
// Used only as comparison input for the mismatch detector.
type PartFile struct {
	PartName string `json:"partName"`
	Quality  string `json:"quality,omitempty"`
	Codec    string `json:"codec,omitempty"`
	Source   string `json:"source,omitempty"`
}
