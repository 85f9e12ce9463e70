package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobclip"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	SeenFileName    = "seen.json"
	SnapshotDirName = "snapshots"
)

// Source values for text input.
const (
	SourceClipboard = "clipboard"
	SourceStdin     = "stdin"
	SourceFile      = "file"
)

// Config contains the defaults for parsing runs.
type Config struct {
	SnapshotDir         string   `json:"snapshot_dir"`
	SaveSnapshots       bool     `json:"save_snapshots"`
	SeenFile            string   `json:"seen_file"`
	Source              string   `json:"source"`
	DebuggerHost        string   `json:"debugger_host"`
	DebuggerPort        int      `json:"debugger_port"`
	LookupTimeoutMS     int      `json:"lookup_timeout_ms"`
	SelectorsFile       string   `json:"selectors_file"`
	FetchTimeoutSeconds int      `json:"fetch_timeout_seconds"`
	ExtraContradictions []string `json:"extra_contradictions"`
	ExtraBlacklist      []string `json:"extra_blacklist"`
}

func DefaultConfig() Config {
	return Config{
		SnapshotDir:         envString("JOBCLIP_SNAPSHOT_DIR", ""),
		SaveSnapshots:       envBool("JOBCLIP_SAVE_SNAPSHOTS", true),
		SeenFile:            envString("JOBCLIP_SEEN_FILE", ""),
		Source:              envString("JOBCLIP_SOURCE", SourceClipboard),
		DebuggerHost:        envString("JOBCLIP_DEBUGGER_HOST", "127.0.0.1"),
		DebuggerPort:        envInt("JOBCLIP_DEBUGGER_PORT", 9222),
		LookupTimeoutMS:     envInt("JOBCLIP_LOOKUP_TIMEOUT_MS", 1500),
		SelectorsFile:       envString("JOBCLIP_SELECTORS_FILE", ""),
		FetchTimeoutSeconds: envInt("JOBCLIP_FETCH_TIMEOUT", 30),
		ExtraContradictions: []string{},
		ExtraBlacklist:      []string{},
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads config.json from the config directory.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads a JSON5 config file over the defaults. A missing or empty
// file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ResolveSnapshotDir returns the snapshot directory, defaulting to
// snapshots/ under configDir.
func (c Config) ResolveSnapshotDir(configDir string) string {
	if strings.TrimSpace(c.SnapshotDir) != "" {
		return c.SnapshotDir
	}
	return filepath.Join(configDir, SnapshotDirName)
}

// ResolveSeenFile returns the seen history path, defaulting to seen.json
// under configDir.
func (c Config) ResolveSeenFile(configDir string) string {
	if strings.TrimSpace(c.SeenFile) != "" {
		return c.SeenFile
	}
	return filepath.Join(configDir, SeenFileName)
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return InitDir(dir)
}

// InitDir is Init rooted at dir.
func InitDir(dir string) ([]string, error) {
	var created []string
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte("# one proxy URL per line\n"), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies returns proxies from the flag, then JOBCLIP_PROXIES, then
// proxies.txt.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBCLIP_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	return readProxyFile(path)
}

func readProxyFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
