package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
instance = "example.service-now.com"
backups_location = "/srv/backups"
deletion_location = "/srv/deletion"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Retention.Days != 14 {
		t.Fatalf("retention.days = %d, want 14", cfg.Retention.Days)
	}
	if cfg.Retention.Timezone != "America/New_York" {
		t.Fatalf("retention.timezone = %q", cfg.Retention.Timezone)
	}
	if cfg.Pipeline.Workers != 8 {
		t.Fatalf("pipeline.workers = %d, want 8", cfg.Pipeline.Workers)
	}
}

func TestLoadNormalizesInstance(t *testing.T) {
	path := writeConfig(t, `
instance = "https://example.service-now.com/"
backups_location = "/srv/backups"
deletion_location = "/srv/deletion"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Instance != "example.service-now.com" {
		t.Fatalf("instance = %q", cfg.Instance)
	}
}

func TestLoadRequiresLocations(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"missing instance",
			"backups_location = \"/a\"\ndeletion_location = \"/b\"\n",
			"instance is required",
		},
		{
			"missing backups location",
			"instance = \"x\"\ndeletion_location = \"/b\"\n",
			"backups_location is required",
		},
		{
			"missing deletion location",
			"instance = \"x\"\nbackups_location = \"/a\"\n",
			"deletion_location is required",
		},
		{
			"identical locations",
			"instance = \"x\"\nbackups_location = \"/a\"\ndeletion_location = \"/a\"\n",
			"must differ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, _, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsBadRetention(t *testing.T) {
	path := writeConfig(t, `
instance = "x"
backups_location = "/a"
deletion_location = "/b"

[retention]
timezone = "Mars/Olympus"
`)
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "retention.timezone") {
		t.Fatalf("Load error = %v", err)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, _, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("Load error = %v", err)
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if err := CreateSample(path); err == nil {
		t.Fatal("expected error for existing file")
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "backups_location") {
		t.Fatal("sample config missing backups_location key")
	}
}
