package internal

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeCaptions serves canned caption tracks or a canned error.
type fakeCaptions struct {
	tracks map[string][]CaptionTrack
	err    error
	calls  int
}

func (f *fakeCaptions) ListTracks(ctx context.Context, videoID string, languages []string) ([]CaptionTrack, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks[videoID], nil
}

func TestResolve_LanguagePreferenceOrder(t *testing.T) {
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {
			{LanguageCode: "en", Segments: []string{"hello", "world"}},
			{LanguageCode: "zh-Hans", Segments: []string{"你好", "世界"}},
		},
	}}
	resolver := NewTranscriptResolver(captions, []string{"zh-Hant", "zh-Hans", "en"}, false)

	result := resolver.Resolve(context.Background(), "vid00000001")

	if !result.Available() {
		t.Fatalf("expected transcript, got status %s", result.Status)
	}
	if result.Text != "你好，世界" {
		t.Errorf("Text = %q, want zh-Hans track joined with full-width comma", result.Text)
	}
}

func TestResolve_JoinsSegments(t *testing.T) {
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {
			{LanguageCode: "en", Segments: []string{"first", "second", "third"}},
		},
	}}
	resolver := NewTranscriptResolver(captions, []string{"en"}, false)

	result := resolver.Resolve(context.Background(), "vid00000001")

	if result.Text != "first，second，third" {
		t.Errorf("Text = %q", result.Text)
	}
	if result.Status != CaptionsFound {
		t.Errorf("Status = %s, want %s", result.Status, CaptionsFound)
	}
}

func TestResolve_NoPreferredLanguage(t *testing.T) {
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {
			{LanguageCode: "fr", Segments: []string{"bonjour"}},
		},
	}}
	resolver := NewTranscriptResolver(captions, []string{"zh-Hant", "en"}, false)

	result := resolver.Resolve(context.Background(), "vid00000001")

	if result.Available() {
		t.Fatalf("expected no transcript, got %q", result.Text)
	}
	if result.Text != "" {
		t.Errorf("Text = %q, want empty", result.Text)
	}
	if result.Status != CaptionsNoMatch {
		t.Errorf("Status = %s, want %s", result.Status, CaptionsNoMatch)
	}
}

func TestResolve_SkipsEmptyTracks(t *testing.T) {
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {
			{LanguageCode: "zh-Hant", Segments: nil},
			{LanguageCode: "en", Segments: []string{"fallback text"}},
		},
	}}
	resolver := NewTranscriptResolver(captions, []string{"zh-Hant", "en"}, false)

	result := resolver.Resolve(context.Background(), "vid00000001")

	if result.Text != "fallback text" {
		t.Errorf("Text = %q, want the non-empty en track", result.Text)
	}
}

func TestResolve_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status CaptionStatus
	}{
		{"disabled", fmt.Errorf("fetching: %w", ErrCaptionsDisabled), CaptionsDisabled},
		{"no captions", fmt.Errorf("fetching: %w", ErrNoCaptions), CaptionsNoMatch},
		{"transport failure", errors.New("connection reset"), CaptionsFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewTranscriptResolver(&fakeCaptions{err: tt.err}, []string{"en"}, false)

			result := resolver.Resolve(context.Background(), "vid00000001")

			if result.Available() {
				t.Fatalf("expected no transcript, got %q", result.Text)
			}
			if result.Status != tt.status {
				t.Errorf("Status = %s, want %s", result.Status, tt.status)
			}
			if result.Err == nil {
				t.Error("expected Err to carry the cause")
			}
		})
	}
}

func TestClassifyCaptionError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"transcripts are disabled for this video", ErrCaptionsDisabled},
		{"no transcript found for requested languages", ErrNoCaptions},
		{"video not found", ErrNoCaptions},
	}

	for _, tt := range tests {
		got := classifyCaptionError(errors.New(tt.msg))
		if !errors.Is(got, tt.want) {
			t.Errorf("classifyCaptionError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}

	other := errors.New("timeout")
	if got := classifyCaptionError(other); got != other {
		t.Errorf("unclassified error should pass through, got %v", got)
	}
}
