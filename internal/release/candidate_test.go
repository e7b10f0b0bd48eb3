package release_test

import (
	"encoding/json"
	"testing"

	"cornerman/internal/release"
)

func TestDownloadable(t *testing.T) {
	cases := []struct {
		name      string
		candidate release.Candidate
		want      bool
	}{
		{name: "approved", candidate: release.Candidate{Approved: true}, want: true},
		{name: "blocklisted", candidate: release.Candidate{Blocklisted: true}, want: true},
		{name: "approved and blocklisted", candidate: release.Candidate{Approved: true, Blocklisted: true}, want: true},
		{name: "neither", candidate: release.Candidate{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.candidate.Downloadable(); got != tc.want {
				t.Fatalf("Downloadable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCandidateDecodesWireFields(t *testing.T) {
	payload := `{
		"title": "UFC 300 Main Card 1080p WEB x264",
		"guid": "indexer-abc-123",
		"indexer": "FightFeed",
		"downloadUrl": "https://indexer.example/grab/abc",
		"size": 4294967296,
		"publishDate": "2026-08-20T14:30:00Z",
		"seeders": 41,
		"quality": "1080p",
		"codec": "x264",
		"source": "WEB",
		"score": 180,
		"qualityScore": 100,
		"customFormatScore": 80,
		"approved": false,
		"rejections": ["quality not wanted"],
		"matchedFormats": [{"name": "FightFeed Boost", "score": 80}],
		"isBlocklisted": true,
		"blocklistReason": "failed download on 2026-08-01"
	}`

	var candidate release.Candidate
	if err := json.Unmarshal([]byte(payload), &candidate); err != nil {
		t.Fatalf("unmarshal candidate: %v", err)
	}

	if candidate.Title != "UFC 300 Main Card 1080p WEB x264" {
		t.Fatalf("unexpected title: %q", candidate.Title)
	}
	if candidate.Seeders == nil || *candidate.Seeders != 41 {
		t.Fatalf("expected seeders 41, got %v", candidate.Seeders)
	}
	if candidate.Leechers != nil {
		t.Fatalf("expected absent leechers to stay nil, got %v", *candidate.Leechers)
	}
	if !candidate.Blocklisted {
		t.Fatal("expected isBlocklisted to map to Blocklisted")
	}
	if candidate.BlocklistReason == "" {
		t.Fatal("expected blocklist reason")
	}
	if len(candidate.MatchedFormats) != 1 || candidate.MatchedFormats[0].Name != "FightFeed Boost" {
		t.Fatalf("unexpected matched formats: %+v", candidate.MatchedFormats)
	}
	if candidate.Downloadable() != true {
		t.Fatal("blocklisted candidate must stay actionable")
	}
}

func TestCanonicalPart(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"main card", "Main Card"},
		{"  prelims ", "Prelims"},
		{"EARLY PRELIMS", "Early Prelims"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := release.CanonicalPart(tc.in); got != tc.want {
			t.Fatalf("CanonicalPart(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
