package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("JOBCLIP_DEBUGGER_PORT", "9333")
	t.Setenv("JOBCLIP_SAVE_SNAPSHOTS", "false")
	t.Setenv("JOBCLIP_SOURCE", "stdin")

	cfg := DefaultConfig()
	if cfg.DebuggerPort != 9333 {
		t.Fatalf("DebuggerPort = %d, want 9333", cfg.DebuggerPort)
	}
	if cfg.SaveSnapshots {
		t.Fatalf("expected SaveSnapshots=false from env")
	}
	if cfg.Source != SourceStdin {
		t.Fatalf("Source = %q, want %q", cfg.Source, SourceStdin)
	}
}

func TestLoadFileJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
  // comments are allowed
  "debugger_port": 9229,
  "extra_contradictions": ["office-first"]
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.DebuggerPort != 9229 {
		t.Fatalf("DebuggerPort = %d, want 9229", cfg.DebuggerPort)
	}
	if len(cfg.ExtraContradictions) != 1 || cfg.ExtraContradictions[0] != "office-first" {
		t.Fatalf("ExtraContradictions = %v", cfg.ExtraContradictions)
	}
	if cfg.LookupTimeoutMS != 1500 {
		t.Fatalf("expected defaults to survive, got LookupTimeoutMS=%d", cfg.LookupTimeoutMS)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.DebuggerHost != "127.0.0.1" {
		t.Fatalf("DebuggerHost = %q", cfg.DebuggerHost)
	}
}

func TestInitDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jobclip")
	created, err := InitDir(dir)
	if err != nil {
		t.Fatalf("InitDir() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created files, got %v", created)
	}
	again, err := InitDir(dir)
	if err != nil {
		t.Fatalf("InitDir() error = %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no files on second init, got %v", again)
	}

	proxies, err := readProxyFile(filepath.Join(dir, ProxiesFileName))
	if err != nil {
		t.Fatalf("readProxyFile() error = %v", err)
	}
	if len(proxies) != 0 {
		t.Fatalf("expected comment-only proxies file, got %v", proxies)
	}
}

func TestLoadProxiesPrecedence(t *testing.T) {
	t.Setenv("JOBCLIP_PROXIES", "http://env:1, http://env:2")
	got, err := LoadProxies("http://flag:1")
	if err != nil || len(got) != 1 || got[0] != "http://flag:1" {
		t.Fatalf("LoadProxies(flag) = %v, %v", got, err)
	}
	got, err = LoadProxies("")
	if err != nil || len(got) != 2 || got[1] != "http://env:2" {
		t.Fatalf("LoadProxies(env) = %v, %v", got, err)
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := Config{}
	if got := cfg.ResolveSnapshotDir("/cfg"); got != filepath.Join("/cfg", SnapshotDirName) {
		t.Fatalf("ResolveSnapshotDir() = %q", got)
	}
	cfg.SeenFile = "/tmp/seen.json"
	if got := cfg.ResolveSeenFile("/cfg"); got != "/tmp/seen.json" {
		t.Fatalf("ResolveSeenFile() = %q", got)
	}
}
