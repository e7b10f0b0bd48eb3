package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cornerman/internal/config"
	"cornerman/internal/daemon"
	"cornerman/internal/ipc"
	"cornerman/internal/logging"
	"cornerman/internal/sportarr"
	"cornerman/internal/testsupport"
)

// sportarrStub fakes the upstream Sportarr API. Grab calls are recorded so
// tests can assert which release was submitted and with which override flag.
type sportarrStub struct {
	mu        sync.Mutex
	guids     []string
	overrides []bool
	failGrab  bool
}

func (s *sportarrStub) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ping":
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/files"):
			if err := json.NewEncoder(w).Encode([]map[string]any{
				{"partName": "Prelim", "quality": "HDTV-1080p", "codec": "x264"},
			}); err != nil {
				t.Errorf("encode files: %v", err)
			}
		case strings.HasSuffix(r.URL.Path, "/search"):
			if err := json.NewEncoder(w).Encode([]map[string]any{
				{
					"title":           "UFC.300.REPACK.1080p",
					"guid":            "g-repack",
					"isBlocklisted":   true,
					"blocklistReason": "grab failed previously",
				},
				{"title": "UFC.300.1080p", "guid": "g-good", "approved": true},
			}); err != nil {
				t.Errorf("encode search: %v", err)
			}
		case r.URL.Path == "/api/release/grab":
			var payload struct {
				GUID              string `json:"guid"`
				OverrideBlocklist bool   `json:"overrideBlocklist"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decode grab: %v", err)
			}
			s.mu.Lock()
			fail := s.failGrab
			if !fail {
				s.guids = append(s.guids, payload.GUID)
				s.overrides = append(s.overrides, payload.OverrideBlocklist)
			}
			s.mu.Unlock()
			if fail {
				w.WriteHeader(http.StatusConflict)
				if err := json.NewEncoder(w).Encode(map[string]any{"message": "release no longer available"}); err != nil {
					t.Errorf("encode grab failure: %v", err)
				}
				return
			}
			if err := json.NewEncoder(w).Encode(map[string]any{"downloadId": "d-42"}); err != nil {
				t.Errorf("encode receipt: %v", err)
			}
		default:
			http.NotFound(w, r)
		}
	})
}

func (s *sportarrStub) grabs() ([]string, []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.guids...), append([]bool(nil), s.overrides...)
}

type cliTestEnv struct {
	cfg        *config.Config
	stub       *sportarrStub
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	stub := &sportarrStub{}
	upstream := httptest.NewServer(stub.handler(t))
	t.Cleanup(upstream.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithServerURL(upstream.URL))

	configPath := filepath.Join(homeDir, ".config", "cornerman", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	client, err := sportarr.New(cfg.Server.URL, sportarr.WithAPIKey(cfg.Server.APIKey))
	if err != nil {
		t.Fatalf("sportarr.New: %v", err)
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "cornerman.log")
	d, err := daemon.New(cfg, client, nil, logging.NewNop(), logPath)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := filepath.Join(cfg.Paths.LogDir, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logging.NewNop())
	if err != nil {
		cancel()
		d.Close()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Close()
	})

	return &cliTestEnv{
		cfg:        cfg,
		stub:       stub,
		daemon:     d,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, args, env.socketPath, env.configPath)
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[server]\nurl = %q\napi_key = %q\n\n[paths]\nlog_dir = %q\n",
		cfg.Server.URL,
		cfg.Server.APIKey,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
