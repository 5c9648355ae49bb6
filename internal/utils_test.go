package internal

import (
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestYesterday(t *testing.T) {
	got := Yesterday()
	want := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	if got != want {
		t.Errorf("Yesterday() = %s, want %s", got, want)
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(got) {
		t.Errorf("Yesterday() = %s, not YYYY-MM-DD", got)
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2024-05-02", "2000-01-01", "2024-12-31"}
	for _, date := range valid {
		if err := ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) = %v, want nil", date, err)
		}
	}

	invalid := []string{"", "2024-5-2", "02-05-2024", "2024-13-01", "2024-05-02T10:00:00Z", "yesterday"}
	for _, date := range invalid {
		if err := ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) = nil, want error", date)
		}
	}
}

func TestPublishedDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-02T18:30:00Z", "2024-05-02"},
		{"2024-05-02", "2024-05-02"},
		{"short", "short"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PublishedDate(tt.in); got != tt.want {
			t.Errorf("PublishedDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@creatorX", "creatorX"},
		{"creatorX", "creatorX"},
		{"  @spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := NormalizeHandle(tt.in); got != tt.want {
			t.Errorf("NormalizeHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidYouTubeID(t *testing.T) {
	valid := []string{"dQw4w9WgXcQ", "abc_def-123"}
	for _, id := range valid {
		if !IsValidYouTubeID(id) {
			t.Errorf("IsValidYouTubeID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", "short", "waytoolongforanid", "bad!chars..", "dQw4w9WgXc "}
	for _, id := range invalid {
		if IsValidYouTubeID(id) {
			t.Errorf("IsValidYouTubeID(%q) = true, want false", id)
		}
	}
}

func TestSaveAndLoadTranscript(t *testing.T) {
	dir := t.TempDir()

	if got := LoadTranscript("vid00000001", dir); got != "" {
		t.Errorf("LoadTranscript of missing file = %q, want empty", got)
	}

	if err := SaveTranscript("vid00000001", "大家好，歡迎收看", dir); err != nil {
		t.Fatalf("SaveTranscript error: %v", err)
	}
	if got := LoadTranscript("vid00000001", dir); got != "大家好，歡迎收看" {
		t.Errorf("LoadTranscript = %q", got)
	}
}

func TestEnsureDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDirs(dir); err != nil {
		t.Fatalf("EnsureDirs error: %v", err)
	}
	if !FileExists(dir) {
		t.Error("directory was not created")
	}
	// Idempotent on an existing directory.
	if err := EnsureDirs(dir); err != nil {
		t.Errorf("EnsureDirs on existing dir: %v", err)
	}
}

func TestValidateModel(t *testing.T) {
	if err := ValidateModel("gpt-4o-mini"); err != nil {
		t.Errorf("ValidateModel(gpt-4o-mini) = %v", err)
	}
	if err := ValidateModel("gpt-3.5-turbo"); err == nil {
		t.Error("ValidateModel(gpt-3.5-turbo) = nil, want error")
	}
}
