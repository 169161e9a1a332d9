package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/legalease/backend/internal/testutil"
)

func TestLoadConfigDefaults(t *testing.T) {
	log := testutil.NewTestLogger(t)
	for _, key := range []string{"PORT", "DB_DRIVER", "SQLITE_PATH", "STORAGE_MODE", "UPLOAD_DIR", "MAX_UPLOAD_BYTES", "DATASET_AUTOLOAD", "CORS_ORIGINS", "CONFIG_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Port != "8000" {
		t.Fatalf("port = %q, want 8000", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("db driver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.StorageMode != "local" {
		t.Fatalf("storage mode = %q, want local", cfg.StorageMode)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("max upload bytes = %d", cfg.MaxUploadBytes)
	}
	if !cfg.DatasetAutoload {
		t.Fatal("dataset autoload must default to true")
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Fatalf("cors origins = %v, want none", cfg.CORSOrigins)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	log := testutil.NewTestLogger(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("DATASET_AUTOLOAD", "false")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("CONFIG_FILE", "")
	os.Unsetenv("CONFIG_FILE")

	cfg, err := LoadConfig(log)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("db driver = %q", cfg.DBDriver)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("max upload bytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.DatasetAutoload {
		t.Fatal("dataset autoload = true, want false")
	}
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("cors origins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestLoadConfigYAMLOverlayWins(t *testing.T) {
	log := testutil.NewTestLogger(t)
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "env-uploads")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `
port: "7777"
max_upload_bytes: 4096
cors_origins:
  - http://yaml.example
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig(log)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Port != "7777" {
		t.Fatalf("port = %q, want yaml value 7777", cfg.Port)
	}
	if cfg.MaxUploadBytes != 4096 {
		t.Fatalf("max upload bytes = %d, want 4096", cfg.MaxUploadBytes)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://yaml.example"}) {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	// Values the overlay does not set keep their env/default values.
	if cfg.UploadDir != "env-uploads" {
		t.Fatalf("upload dir = %q, want env value", cfg.UploadDir)
	}
}

func TestLoadConfigYAMLOverlayCanDisableAutoload(t *testing.T) {
	log := testutil.NewTestLogger(t)
	t.Setenv("DATASET_AUTOLOAD", "true")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("dataset_autoload: false\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig(log)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatasetAutoload {
		t.Fatal("dataset_autoload: false in the overlay must win over env true")
	}

	// An overlay that omits the key leaves the env value alone.
	if err := os.WriteFile(path, []byte("port: \"7777\"\n"), 0o644); err != nil {
		t.Fatalf("rewrite config file: %v", err)
	}
	cfg, err = LoadConfig(log)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.DatasetAutoload {
		t.Fatal("overlay without dataset_autoload must not override env true")
	}
}

func TestLoadConfigYAMLOverlayLogMode(t *testing.T) {
	log := testutil.NewTestLogger(t)
	t.Setenv("LOG_MODE", "development")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_mode: production\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig(log)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogMode != "production" {
		t.Fatalf("log mode = %q, want production from overlay", cfg.LogMode)
	}
}

func TestLoadConfigMissingFileFails(t *testing.T) {
	log := testutil.NewTestLogger(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := LoadConfig(log); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSplitAndTrim(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{in: "a,b", want: []string{"a", "b"}},
		{in: " a , b ,", want: []string{"a", "b"}},
		{in: ",,", want: []string{}},
		{in: "single", want: []string{"single"}},
	}
	for _, tc := range cases {
		got := splitAndTrim(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("splitAndTrim(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}
