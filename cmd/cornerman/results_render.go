package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"cornerman/internal/ipc"
	"cornerman/internal/release"
	"cornerman/internal/session"
)

// renderSession prints the state of the search slot: a summary line, the
// results table when the slot holds any, and whatever is pending.
func renderSession(stdout io.Writer, snap ipc.SessionSnapshot) {
	if !snap.Open {
		fmt.Fprintln(stdout, "No open session.")
		return
	}

	fmt.Fprintf(stdout, "Session %s: %s\n", snap.SessionID, formatTarget(snap.Target))

	switch snap.State {
	case session.StateSearching:
		fmt.Fprintln(stdout, "Search in progress; run `cornerman results` to check back.")
		return
	case session.StateFailed:
		fmt.Fprintln(stdout, snap.Error)
		return
	case session.StateIdle:
		fmt.Fprintln(stdout, "No search has run yet; run `cornerman search`.")
		return
	}

	// Populated. A grab that failed leaves its message here alongside the
	// still-valid results.
	if snap.Error != "" {
		fmt.Fprintln(stdout, snap.Error)
	}

	if len(snap.Results) == 0 {
		fmt.Fprintln(stdout, "No releases found.")
		return
	}

	renderResultsTable(stdout, snap)

	switch {
	case snap.Confirmation != nil:
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "Row %d (%s) is blocklisted and waiting for confirmation.\n",
			snap.Confirmation.Index+1, snap.Confirmation.Candidate.Title)
		fmt.Fprintln(stdout, "Run `cornerman confirm` to grab it anyway, or `cornerman cancel` to back out.")
	case snap.Downloading >= 0:
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "Grab of row %d is in flight.\n", snap.Downloading+1)
	}
}

func renderResultsTable(stdout io.Writer, snap ipc.SessionSnapshot) {
	headers := []string{"Row", "Title", "Indexer", "Quality", "Size", "Age", "Score", "Peers", "Status", "Notes"}
	aligns := []columnAlignment{
		alignRight, alignLeft, alignLeft, alignLeft, alignRight,
		alignLeft, alignRight, alignRight, alignLeft, alignLeft,
	}

	rows := make([][]string, 0, len(snap.Results))
	for i, candidate := range snap.Results {
		notes := release.MismatchWarnings(candidate, snap.Target.Part, snap.Files)
		if candidate.Blocklisted && candidate.BlocklistReason != "" {
			notes = append(notes, candidate.BlocklistReason)
		}
		if !candidate.Downloadable() {
			notes = append(notes, candidate.Rejections...)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			candidate.Title,
			candidate.Indexer,
			candidate.Quality,
			formatSize(candidate.Size),
			formatAge(candidate.PublishDate),
			strconv.Itoa(candidate.Score),
			formatPeers(candidate),
			formatCandidateStatus(candidate),
			strings.Join(notes, "; "),
		})
	}
	renderTable(stdout, headers, rows, aligns)
}

func renderPartFiles(stdout io.Writer, files []release.PartFile) {
	headers := []string{"Part", "Quality", "Codec", "Source"}
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{file.PartName, file.Quality, file.Codec, file.Source})
	}
	renderTable(stdout, headers, rows, nil)
}

func formatTarget(target session.Target) string {
	label := fmt.Sprintf("event %d", target.EventID)
	if target.Part != "" {
		label += " / " + target.Part
	}
	return label
}

func formatSize(size int64) string {
	if size <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(size))
}

func formatAge(published time.Time) string {
	if published.IsZero() {
		return ""
	}
	return humanize.Time(published)
}

func formatPeers(candidate release.Candidate) string {
	if candidate.Seeders == nil && candidate.Leechers == nil {
		return ""
	}
	seeders, leechers := "?", "?"
	if candidate.Seeders != nil {
		seeders = strconv.Itoa(*candidate.Seeders)
	}
	if candidate.Leechers != nil {
		leechers = strconv.Itoa(*candidate.Leechers)
	}
	return seeders + "/" + leechers
}

func formatCandidateStatus(candidate release.Candidate) string {
	switch {
	case candidate.Blocklisted:
		return "BLOCKED"
	case candidate.Approved:
		return "OK"
	default:
		return "REJECTED"
	}
}
