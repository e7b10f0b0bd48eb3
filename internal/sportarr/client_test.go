package sportarr_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cornerman/internal/release"
	"cornerman/internal/sportarr"
)

func TestSearchPostsPartAndDecodesCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/event/42/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["part"] != "Main Card" {
			t.Fatalf("expected part in body, got %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"title":"UFC 300 Main Card 1080p","guid":"g1","indexer":"FightFeed","approved":true,"quality":"1080p","seeders":12,"score":150}]`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL, sportarr.WithAPIKey("secret"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	candidates, err := client.Search(context.Background(), 42, "Main Card")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected one candidate, got %d", len(candidates))
	}
	got := candidates[0]
	if got.Title != "UFC 300 Main Card 1080p" || got.Indexer != "FightFeed" {
		t.Fatalf("unexpected candidate: %+v", got)
	}
	if got.Seeders == nil || *got.Seeders != 12 {
		t.Fatalf("expected seeders 12, got %v", got.Seeders)
	}
	if !got.Approved {
		t.Fatal("expected approved candidate")
	}
}

func TestSearchOmitsPartWhenSearchingAllParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, present := body["part"]; present {
			t.Fatalf("expected part to be omitted, got %v", body)
		}
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	candidates, err := client.Search(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected empty result, got %d", len(candidates))
	}
}

func TestGrabSendsFullCandidateAndDecodesReceipt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/release/grab" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["title"] != "UFC 300 Prelims" || body["guid"] != "g2" {
			t.Fatalf("expected candidate fields flattened into body, got %v", body)
		}
		if body["eventId"] != float64(42) {
			t.Fatalf("expected eventId 42, got %v", body["eventId"])
		}
		if body["overrideBlocklist"] != true {
			t.Fatalf("expected overrideBlocklist true, got %v", body["overrideBlocklist"])
		}
		io.WriteString(w, `{"downloadId":"d-91"}`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	receipt, err := client.Grab(context.Background(), sportarr.GrabRequest{
		Candidate:         release.Candidate{Title: "UFC 300 Prelims", GUID: "g2", Blocklisted: true},
		EventID:           42,
		OverrideBlocklist: true,
	})
	if err != nil {
		t.Fatalf("Grab returned error: %v", err)
	}
	if receipt.DownloadID != "d-91" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestGrabParsesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"no download client"}`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Grab(context.Background(), sportarr.GrabRequest{EventID: 42})
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *sportarr.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected code: %d", statusErr.Code)
	}
	if statusErr.Message != "no download client" {
		t.Fatalf("unexpected message: %q", statusErr.Message)
	}
}

func TestGrabStatusErrorWithoutParseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Grab(context.Background(), sportarr.GrabRequest{EventID: 1})
	var statusErr *sportarr.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusInternalServerError || statusErr.Message != "" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestEventPartsDecodesFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/event/7/files" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[{"partName":"Prelim","quality":"1080p","codec":"x264","source":"WEB"}]`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	files, err := client.EventParts(context.Background(), 7)
	if err != nil {
		t.Fatalf("EventParts returned error: %v", err)
	}
	if len(files) != 1 || files[0].PartName != "Prelim" || files[0].Quality != "1080p" {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestRenamePreviewScopesRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rename-preview" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("eventId"); got != "42" {
			t.Fatalf("expected eventId query, got %q", got)
		}
		io.WriteString(w, `[{"existingPath":"old.mkv","newPath":"new.mkv","changes":[{"field":"quality","oldValue":"720p","newValue":"1080p"}]}]`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	items, err := client.RenamePreview(context.Background(), sportarr.RenameScope{EventID: 42})
	if err != nil {
		t.Fatalf("RenamePreview returned error: %v", err)
	}
	if len(items) != 1 || items[0].NewPath != "new.mkv" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(items[0].Changes) != 1 || items[0].Changes[0].Field != "quality" {
		t.Fatalf("unexpected changes: %+v", items[0].Changes)
	}
}

func TestRenameScopeRequiresExactlyOneSelector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for invalid scope: %s", r.URL.String())
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.RenamePreview(context.Background(), sportarr.RenameScope{}); err == nil {
		t.Fatal("expected error for empty scope")
	}
	scope := sportarr.RenameScope{EventID: 1, FightCardID: 2}
	if _, err := client.RenamePreview(context.Background(), scope); err == nil {
		t.Fatal("expected error for ambiguous scope")
	}
}

func TestRenameApplyPostsScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/rename" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["organization"] != "UFC" {
			t.Fatalf("expected organization in body, got %v", body)
		}
		io.WriteString(w, `[{"existingPath":"old.mkv","newPath":"new.mkv"}]`)
	}))
	defer server.Close()

	client, err := sportarr.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	items, err := client.RenameApply(context.Background(), sportarr.RenameScope{Organization: "UFC"})
	if err != nil {
		t.Fatalf("RenameApply returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one applied rename, got %d", len(items))
	}
}

func TestPingDistinguishesFailures(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	client, err := sportarr.New(healthy.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	unauthorized := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer unauthorized.Close()

	client, err = sportarr.New(unauthorized.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Ping(context.Background())
	var statusErr *sportarr.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}
