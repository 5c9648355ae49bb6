package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeDownloader writes a small audio file per request and counts downloads.
type fakeDownloader struct {
	dir   string
	err   error
	calls int
}

func (f *fakeDownloader) Audio(ctx context.Context, videoID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(f.dir, videoID+".mp3")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// fakeAI returns canned transcription and summary text.
type fakeAI struct {
	transcript      string
	transcribeErr   error
	summary         string
	summaryErr      error
	transcribeCalls int
	summaryCalls    int
}

func (f *fakeAI) Transcribe(ctx context.Context, audioFile string) (string, error) {
	f.transcribeCalls++
	if f.transcribeErr != nil {
		return "", f.transcribeErr
	}
	return f.transcript, nil
}

func (f *fakeAI) Summary(ctx context.Context, prompt string) (string, error) {
	f.summaryCalls++
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summary, nil
}

func testConfig(t *testing.T, watchList []string) *Config {
	t.Helper()
	base := t.TempDir()
	return &Config{
		WatchList:      watchList,
		Languages:      []string{"zh-Hant", "zh-Hans", "en"},
		DigestModel:    "gpt-4o-mini",
		TranscriptsDir: filepath.Join(base, "transcripts"),
		ChannelsFile:   filepath.Join(base, "channels.json"),
		Quiet:          true,
		Prompt:         "Summarize {{.Title}} by {{.Creator}}:\n{{.Transcript}}",
		ConfigDir:      base,
		DataDir:        base,
		CacheDir:       base,
		TempDir:        filepath.Join(base, "temp_chunks"),
	}
}

func testApp(t *testing.T, config *Config, lister UploadsLister, captions CaptionLister, downloader AudioDownloader, ai Transcriber) *App {
	t.Helper()
	app, err := NewApp(context.Background(), config,
		WithUploadsLister(lister),
		WithCaptionLister(captions),
		WithDownloader(downloader),
		WithTranscriber(ai),
	)
	if err != nil {
		t.Fatalf("NewApp error: %v", err)
	}
	return app
}

func singleUploadAPI(handle, videoID, publishedAt string) *fakeUploadsAPI {
	return &fakeUploadsAPI{
		channels:  map[string]string{handle: "UCtest"},
		playlists: map[string]string{"UCtest": "UUtest"},
		pages: map[string]*UploadsPage{
			"": {Items: []UploadItem{upload(videoID, publishedAt)}},
		},
	}
}

func TestFetchVideos_CaptionsFirst(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	api := singleUploadAPI("@creatorX", "vid00000001", "2024-05-02T10:00:00Z")
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {{LanguageCode: "en", Segments: []string{"caption text"}}},
	}}
	downloader := &fakeDownloader{dir: t.TempDir()}
	ai := &fakeAI{transcript: "whisper text"}
	app := testApp(t, config, api, captions, downloader, ai)

	videos, err := app.FetchVideos(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("FetchVideos error: %v", err)
	}

	if len(videos) != 1 {
		t.Fatalf("got %d videos, want 1", len(videos))
	}
	if videos[0].Transcript != "caption text" {
		t.Errorf("Transcript = %q, want caption text", videos[0].Transcript)
	}
	if downloader.calls != 0 {
		t.Errorf("audio fallback ran %d times for a captioned video", downloader.calls)
	}
}

func TestFetchVideos_FallbackWhenCaptionsDisabled(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	api := singleUploadAPI("@creatorX", "vid00000001", "2024-05-02T10:00:00Z")
	captions := &fakeCaptions{err: ErrCaptionsDisabled}
	downloader := &fakeDownloader{dir: t.TempDir()}
	ai := &fakeAI{transcript: "hello"}
	app := testApp(t, config, api, captions, downloader, ai)

	videos, err := app.FetchVideos(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("FetchVideos error: %v", err)
	}

	if len(videos) != 1 || videos[0].Transcript != "hello" {
		t.Fatalf("got %+v, want one record transcribed via fallback", videos)
	}
	if downloader.calls != 1 {
		t.Errorf("downloads = %d, want 1", downloader.calls)
	}
	if ai.transcribeCalls != 1 {
		t.Errorf("transcriptions = %d, want 1", ai.transcribeCalls)
	}

	// The downloaded audio must not outlive the transcription.
	if FileExists(filepath.Join(downloader.dir, "vid00000001.mp3")) {
		t.Error("audio artifact was not cleaned up")
	}
}

func TestFetchVideos_NoVideoLostToFailures(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	api := &fakeUploadsAPI{
		channels:  map[string]string{"@creatorX": "UCtest"},
		playlists: map[string]string{"UCtest": "UUtest"},
		pages: map[string]*UploadsPage{
			"": {Items: []UploadItem{
				upload("vid00000003", "2024-05-02T20:00:00Z"),
				upload("vid00000002", "2024-05-02T12:00:00Z"),
				upload("vid00000001", "2024-05-02T06:00:00Z"),
			}},
		},
	}
	captions := &fakeCaptions{err: errors.New("connection reset")}
	downloader := &fakeDownloader{dir: t.TempDir(), err: errors.New("download blocked")}
	app := testApp(t, config, api, captions, downloader, &fakeAI{})

	videos, err := app.FetchVideos(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("FetchVideos error: %v", err)
	}

	if len(videos) != 3 {
		t.Fatalf("got %d videos, want all 3 despite transcript failures", len(videos))
	}
	for _, v := range videos {
		if v.Transcript != "" {
			t.Errorf("%s: Transcript = %q, want empty", v.VideoID, v.Transcript)
		}
	}
}

func TestFetchVideos_FailingChannelSkipped(t *testing.T) {
	config := testConfig(t, []string{"@broken", "@creatorX"})
	api := &fakeUploadsAPI{
		channels: map[string]string{
			"@broken":   "UCbroken",
			"@creatorX": "UCtest",
		},
		// @broken has no uploads playlist entry, so listing it fails.
		playlists: map[string]string{"UCtest": "UUtest"},
		pages: map[string]*UploadsPage{
			"": {Items: []UploadItem{upload("vid00000001", "2024-05-02T10:00:00Z")}},
		},
	}
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {{LanguageCode: "en", Segments: []string{"text"}}},
	}}
	app := testApp(t, config, api, captions, &fakeDownloader{dir: t.TempDir()}, &fakeAI{})

	videos, err := app.FetchVideos(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("FetchVideos error: %v", err)
	}
	if len(videos) != 1 || videos[0].VideoID != "vid00000001" {
		t.Errorf("got %+v, want only @creatorX's video", videos)
	}
}

func TestTranscriptFor_ReusesSavedTranscript(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	if err := EnsureDirs(config.TranscriptsDir); err != nil {
		t.Fatal(err)
	}
	if err := SaveTranscript("vid00000001", "saved earlier", config.TranscriptsDir); err != nil {
		t.Fatal(err)
	}

	captions := &fakeCaptions{err: errors.New("should not be queried")}
	app := testApp(t, config, &fakeUploadsAPI{}, captions, &fakeDownloader{dir: t.TempDir()}, &fakeAI{})

	text := app.TranscriptFor(context.Background(), "vid00000001")

	if text != "saved earlier" {
		t.Errorf("TranscriptFor = %q, want saved transcript", text)
	}
	if captions.calls != 0 {
		t.Errorf("caption lister queried %d times for a saved transcript", captions.calls)
	}
}

func TestTranscriptFor_PersistsNewTranscript(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	if err := EnsureDirs(config.TranscriptsDir); err != nil {
		t.Fatal(err)
	}
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {{LanguageCode: "en", Segments: []string{"fresh"}}},
	}}
	app := testApp(t, config, &fakeUploadsAPI{}, captions, &fakeDownloader{dir: t.TempDir()}, &fakeAI{})

	if text := app.TranscriptFor(context.Background(), "vid00000001"); text != "fresh" {
		t.Fatalf("TranscriptFor = %q", text)
	}
	if got := LoadTranscript("vid00000001", config.TranscriptsDir); got != "fresh" {
		t.Errorf("saved transcript = %q, want fresh", got)
	}
}

func TestSummarize_FailureLeavesRecord(t *testing.T) {
	config := testConfig(t, nil)
	ai := &fakeAI{summaryErr: errors.New("rate limited")}
	app := testApp(t, config, &fakeUploadsAPI{}, &fakeCaptions{}, &fakeDownloader{dir: t.TempDir()}, ai)

	videos := []VideoRecord{
		{VideoID: "vid00000001", Title: "One", Transcript: "text"},
		{VideoID: "vid00000002", Title: "Two", Transcript: ""},
	}
	app.Summarize(context.Background(), videos)

	if videos[0].Summary != "" {
		t.Errorf("Summary = %q, want empty on failure", videos[0].Summary)
	}
	if ai.summaryCalls != 1 {
		t.Errorf("summary calls = %d, want 1 (no call for empty transcript)", ai.summaryCalls)
	}
}

func TestDigest_EndToEnd(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	api := singleUploadAPI("@creatorX", "vid00000001", "2024-05-02T10:00:00Z")
	captions := &fakeCaptions{tracks: map[string][]CaptionTrack{
		"vid00000001": {{LanguageCode: "zh-Hant", Segments: []string{"大家好"}}},
	}}
	ai := &fakeAI{summary: "A short summary."}
	app := testApp(t, config, api, captions, &fakeDownloader{dir: t.TempDir()}, ai)

	digest, err := app.Digest(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("Digest error: %v", err)
	}

	for _, want := range []string{"video vid00000001", "Test Channel", "2024-05-02", "A short summary."} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestDigest_EmptyDay(t *testing.T) {
	config := testConfig(t, []string{"@creatorX"})
	api := &fakeUploadsAPI{
		channels:  map[string]string{"@creatorX": "UCtest"},
		playlists: map[string]string{"UCtest": "UUtest"},
		pages: map[string]*UploadsPage{
			"": {Items: []UploadItem{upload("vidOld00000", "2024-04-01T10:00:00Z")}},
		},
	}
	app := testApp(t, config, api, &fakeCaptions{}, &fakeDownloader{dir: t.TempDir()}, &fakeAI{})

	digest, err := app.Digest(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("Digest error: %v", err)
	}
	if digest != EmptyDigestNotice("2024-05-02") {
		t.Errorf("digest = %q, want empty-day notice", digest)
	}
}
