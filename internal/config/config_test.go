package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/toaster/internal/errors"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var te *errors.ToasterError
	if !stderrors.As(err, &te) {
		t.Fatalf("error %v is not a *ToasterError", err)
	}
	return te.Code
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", cfg.Limit, DefaultLimit)
	}
	if cfg.RemoveDelayDuration() != 5*time.Second {
		t.Errorf("RemoveDelayDuration() = %v, want 5s", cfg.RemoveDelayDuration())
	}
	if cfg.DurationValue() != 0 {
		t.Errorf("DurationValue() = %v, want 0", cfg.DurationValue())
	}
	if cfg.IDs != DefaultIDs {
		t.Errorf("IDs = %q, want %q", cfg.IDs, DefaultIDs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if code := errorCode(t, err); code != "E100" {
		t.Errorf("code = %q, want E100", code)
	}

	writeFile(t, tmpDir, "toaster.json", `{
  "limit": 3,
  "removeDelay": "2s",
  "duration": "4s",
  "ids": "uuid",
  "log": {"level": "debug", "format": "json"}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Limit != 3 {
		t.Errorf("Limit = %d, want 3", cfg.Limit)
	}
	if cfg.RemoveDelayDuration() != 2*time.Second {
		t.Errorf("RemoveDelayDuration() = %v, want 2s", cfg.RemoveDelayDuration())
	}
	if cfg.DurationValue() != 4*time.Second {
		t.Errorf("DurationValue() = %v, want 4s", cfg.DurationValue())
	}
	if cfg.IDs != "uuid" {
		t.Errorf("IDs = %q, want uuid", cfg.IDs)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	// Omitted sections keep their defaults.
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if cfg.Format() != "json" {
		t.Errorf("Format() = %q, want json", cfg.Format())
	}
}

func TestLoad_PrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "toaster.yaml", "limit: 7\n")
	writeFile(t, tmpDir, "toaster.toml", "limit = 5\n")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Limit != 5 {
		t.Errorf("Limit = %d, want 5 (toml before yaml)", cfg.Limit)
	}

	writeFile(t, tmpDir, "toaster.json", `{"limit": 2}`)
	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Limit != 2 {
		t.Errorf("Limit = %d, want 2 (json first)", cfg.Limit)
	}
}

func TestLoadFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "toaster.toml", "limit = 4\nremoveDelay = \"1s\"\n\n[log]\nlevel = \"warn\"\n"},
		{"yaml", "toaster.yaml", "limit: 4\nremoveDelay: 1s\nlog:\n  level: warn\n"},
		{"yml", "toaster.yml", "limit: 4\nremoveDelay: 1s\nlog:\n  level: warn\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if cfg.Limit != 4 {
				t.Errorf("Limit = %d, want 4", cfg.Limit)
			}
			if cfg.RemoveDelayDuration() != time.Second {
				t.Errorf("RemoveDelayDuration() = %v, want 1s", cfg.RemoveDelayDuration())
			}
			if cfg.Log.Level != "warn" {
				t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
			}
			if cfg.Log.Format != DefaultLogFormat {
				t.Errorf("Log.Format = %q, want default", cfg.Log.Format)
			}
		})
	}
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "toaster.ini", "limit=1")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errorCode(t, err); code != "E107" {
		t.Errorf("code = %q, want E107", code)
	}
}

func TestLoadFile_SyntaxErrorLocation(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantLine int
	}{
		{"json", "toaster.json", "{\n  \"limit\": 3,\n  \"ids\": ,\n}\n", 3},
		{"json type", "toaster.json", "{\n  \"limit\": \"three\"\n}\n", 2},
		{"toml", "toaster.toml", "limit = 3\nids = \n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			var te *errors.ToasterError
			if !stderrors.As(err, &te) {
				t.Fatalf("error %T is not a *ToasterError", err)
			}
			if te.Code != "E101" {
				t.Errorf("code = %q, want E101", te.Code)
			}
			if te.Location == nil {
				t.Fatal("expected location")
			}
			if te.Location.Line != tt.wantLine {
				t.Errorf("Location.Line = %d, want %d", te.Location.Line, tt.wantLine)
			}
			if len(te.Context) == 0 {
				t.Error("expected context lines")
			}
		})
	}
}

func TestLoadFile_YAMLSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "toaster.yaml", "limit: [1\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errorCode(t, err); code != "E101" {
		t.Errorf("code = %q, want E101", code)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	orig := New()
	orig.Limit = 4
	orig.Duration = "3s"
	orig.IDs = "uuid"
	orig.Log.Format = "json"
	orig.Metrics.Enabled = true
	orig.Tracing.Enabled = true

	for _, name := range FileNames {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := orig.SaveTo(path); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}
			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if diff := cmp.Diff(orig, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if loaded.Path() != path {
				t.Errorf("Path() = %q, want %q", loaded.Path(), path)
			}
		})
	}
}

func TestSave_NoPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("expected error when saving a config with no path")
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toaster.toml")

	cfg, err := Create(path)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "removeDelay") {
		t.Errorf("written file missing removeDelay:\n%s", data)
	}

	_, err = Create(path)
	if err == nil {
		t.Fatal("expected error for existing file")
	}
	if code := errorCode(t, err); code != "E109" {
		t.Errorf("code = %q, want E109", code)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"zero limit", func(c *Config) { c.Limit = 0 }, "E102"},
		{"bad remove delay", func(c *Config) { c.RemoveDelay = "soon" }, "E103"},
		{"negative duration", func(c *Config) { c.Duration = "-1s" }, "E103"},
		{"unknown ids", func(c *Config) { c.IDs = "snowflake" }, "E104"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "E105"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "E106"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if code := errorCode(t, err); code != tt.code {
				t.Errorf("code = %q, want %q", code, tt.code)
			}
		})
	}

	t.Run("upper case log level", func(t *testing.T) {
		cfg := New()
		cfg.Log.Level = "DEBUG"
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestDurations_InvalidFallBack(t *testing.T) {
	cfg := New()
	cfg.RemoveDelay = "soon"
	cfg.Duration = "later"

	if got := cfg.RemoveDelayDuration(); got != 5*time.Second {
		t.Errorf("RemoveDelayDuration() = %v, want 5s", got)
	}
	if got := cfg.DurationValue(); got != 0 {
		t.Errorf("DurationValue() = %v, want 0", got)
	}
}

func TestLineCol(t *testing.T) {
	data := []byte("ab\ncde\nf")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{100, 3, 2},
	}
	for _, tt := range tests {
		line, col := lineCol(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("lineCol(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists() = true for empty dir")
	}
	writeFile(t, dir, "toaster.yaml", "limit: 1\n")
	if !Exists(dir) {
		t.Error("Exists() = false after writing toaster.yaml")
	}
}
