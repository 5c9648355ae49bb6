package internal

import (
	"context"
	"fmt"
	"os"
)

// Transcriber is the slice of AI the pipeline needs, split out so tests can
// stand in for the OpenAI-backed implementation.
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string) (string, error)
	Summary(ctx context.Context, prompt string) (string, error)
}

// App holds the application state and dependencies
type App struct {
	lister        UploadsLister
	registry      *Registry
	discovery     *Discovery
	resolver      *TranscriptResolver
	downloader    AudioDownloader
	ai            Transcriber
	promptManager *PromptManager
	reporter      MessageSender
	config        *Config
	ui            UIManager
}

// AppOption customizes App creation
type AppOption func(*App)

// WithUploadsLister sets a custom YouTube Data API client
func WithUploadsLister(lister UploadsLister) AppOption {
	return func(a *App) {
		a.lister = lister
	}
}

// WithCaptionLister sets a custom caption track client
func WithCaptionLister(captions CaptionLister) AppOption {
	return func(a *App) {
		a.resolver = NewTranscriptResolver(captions, a.config.Languages, a.config.Verbose)
	}
}

// WithDownloader sets a custom audio downloader
func WithDownloader(downloader AudioDownloader) AppOption {
	return func(a *App) {
		a.downloader = downloader
	}
}

// WithTranscriber sets a custom transcription/summary backend
func WithTranscriber(ai Transcriber) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithReporter sets the digest delivery transport
func WithReporter(reporter MessageSender) AppOption {
	return func(a *App) {
		a.reporter = reporter
	}
}

// NewApp initializes the application
func NewApp(ctx context.Context, config *Config, options ...AppOption) (*App, error) {
	app := &App{
		config:        config,
		ui:            NewUIManager(config.Verbose, config.Quiet),
		promptManager: NewPromptManager(config.ConfigDir, config.Prompt),
	}

	// Apply any custom options before wiring defaults, so tests can swap
	// out every external surface.
	for _, option := range options {
		option(app)
	}

	if app.lister == nil {
		api, err := NewDataAPI(ctx, config.YouTubeAPIKey, config.APITimeout)
		if err != nil {
			return nil, err
		}
		app.lister = api
	}
	if app.registry == nil {
		app.registry = NewRegistry(config.ChannelsFile, app.lister, config.Verbose)
	}
	if app.discovery == nil {
		app.discovery = NewDiscovery(app.lister, config.Verbose)
	}
	if app.resolver == nil {
		app.resolver = NewTranscriptResolver(NewCaptionLister(), config.Languages, config.Verbose)
	}
	if app.downloader == nil {
		app.downloader = NewDownloader(config.CacheDir, config.Verbose)
	}
	if app.ai == nil {
		splitter := NewSplitter(&DefaultCommandRunner{}, config.TempDir)
		app.ai = NewAIWithKey(config.OpenAIAPIKey, splitter, config.DigestModel,
			WhisperLimit, config.SummaryTimeout, config.WhisperTimeout, config.Verbose)
	}

	return app, nil
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// Config returns the application configuration.
func (app *App) Config() *Config {
	return app.config
}

// ResolveChannels reconciles the channel cache against the watch-list and
// returns the handle -> channel ID mapping for this run.
func (app *App) ResolveChannels(ctx context.Context) (map[string]*string, error) {
	if len(app.config.WatchList) == 0 {
		app.ui.Println("Watch-list is empty; nothing to resolve")
	}
	return app.registry.Resolve(ctx, app.config.WatchList)
}

// DiscoverVideos lists every watched channel's uploads for the target date,
// in watch-list order. A failing channel contributes zero records.
func (app *App) DiscoverVideos(ctx context.Context, date string) ([]VideoRecord, error) {
	channels, err := app.ResolveChannels(ctx)
	if err != nil {
		return nil, err
	}

	bar := app.ui.NewProgressBar(len(app.config.WatchList), "Discovering videos")
	defer bar.Finish()

	var videos []VideoRecord
	for _, handle := range app.config.WatchList {
		channelID := channels[handle]
		if channelID == nil {
			app.ui.Verbose("Skipping %s: handle unresolved\n", handle)
			bar.Add(1)
			continue
		}

		found, err := app.discovery.ListByDate(ctx, *channelID, date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: listing uploads for %s: %v\n", handle, err)
			bar.Add(1)
			continue
		}

		app.ui.Verbose("%s: %d video(s) on %s\n", handle, len(found), date)
		videos = append(videos, found...)
		bar.Add(1)
	}

	return videos, nil
}

// FetchVideos runs the full acquisition pipeline for a date: resolve
// channels, discover uploads, and attach a transcript to every record.
// Every discovered video is returned exactly once; transcript failures
// leave the field empty instead of dropping the record.
func (app *App) FetchVideos(ctx context.Context, date string) ([]VideoRecord, error) {
	if err := EnsureDirs(app.config.TranscriptsDir); err != nil {
		return nil, fmt.Errorf("creating transcripts directory: %w", err)
	}

	videos, err := app.DiscoverVideos(ctx, date)
	if err != nil {
		return nil, err
	}

	bar := app.ui.NewProgressBar(len(videos), "Resolving transcripts")
	defer bar.Finish()

	for i := range videos {
		videos[i].Transcript = app.TranscriptFor(ctx, videos[i].VideoID)
		bar.Add(1)
	}

	return videos, nil
}

// TranscriptFor returns the best transcript obtainable for a video: the
// saved copy if one exists, otherwise caption tracks, otherwise the audio
// fallback. Returns "" when every path fails.
func (app *App) TranscriptFor(ctx context.Context, videoID string) string {
	if text := LoadTranscript(videoID, app.config.TranscriptsDir); text != "" {
		app.ui.Verbose("Using saved transcript for %s\n", videoID)
		return text
	}

	result := app.resolver.Resolve(ctx, videoID)
	if result.Available() {
		app.saveTranscript(videoID, result.Text)
		return result.Text
	}

	app.ui.Verbose("Caption path empty for %s (%s), trying audio fallback\n", videoID, result.Status)
	text := app.transcribeFallback(ctx, videoID)
	if text != "" {
		app.saveTranscript(videoID, text)
	}
	return text
}

// ResolveCaptions runs only the caption path for one video.
func (app *App) ResolveCaptions(ctx context.Context, videoID string) CaptionResult {
	return app.resolver.Resolve(ctx, videoID)
}

// TranscribeFallback runs only the audio fallback for one video. Returns ""
// when the download or the speech-to-text call fails.
func (app *App) TranscribeFallback(ctx context.Context, videoID string) string {
	return app.transcribeFallback(ctx, videoID)
}

// transcribeFallback downloads the video's audio and runs speech-to-text.
// Failures are logged and yield "": the fallback never aborts the run.
func (app *App) transcribeFallback(ctx context.Context, videoID string) string {
	audioFile, err := app.downloader.Audio(ctx, videoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: downloading audio for %s: %v\n", videoID, err)
		return ""
	}
	defer cleanupFiles(audioFile)

	text, err := app.ai.Transcribe(ctx, audioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: transcribing %s: %v\n", videoID, err)
		return ""
	}
	return text
}

func (app *App) saveTranscript(videoID, text string) {
	if err := SaveTranscript(videoID, text, app.config.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// Summarize attaches an AI summary to every record with a transcript.
// Summary failures leave the field empty; the record stays in the digest.
func (app *App) Summarize(ctx context.Context, videos []VideoRecord) {
	bar := app.ui.NewProgressBar(len(videos), "Summarizing")
	defer bar.Finish()

	for i := range videos {
		if videos[i].Transcript == "" {
			bar.Add(1)
			continue
		}

		prompt, err := app.promptManager.CreatePrompt(videos[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: building prompt for %s: %v\n", videos[i].VideoID, err)
			bar.Add(1)
			continue
		}

		summary, err := app.ai.Summary(ctx, prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: summarizing %s: %v\n", videos[i].VideoID, err)
			bar.Add(1)
			continue
		}
		videos[i].Summary = summary
		bar.Add(1)
	}
}

// Digest runs the whole pipeline for a date and returns the markdown report.
func (app *App) Digest(ctx context.Context, date string) (string, error) {
	videos, err := app.FetchVideos(ctx, date)
	if err != nil {
		return "", err
	}

	app.Summarize(ctx, videos)

	return BuildDigest(date, videos), nil
}

// DeliverDigest sends a digest through the configured reporter.
func (app *App) DeliverDigest(digest string) error {
	if app.reporter == nil {
		reporter, err := NewTelegramReporter(app.config.TelegramToken, app.config.TelegramChatID)
		if err != nil {
			return err
		}
		app.reporter = reporter
	}
	return app.reporter.Send(digest)
}
