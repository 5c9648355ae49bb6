package internal

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
)

// AudioDownloader fetches a video's audio track to a local file.
type AudioDownloader interface {
	Audio(ctx context.Context, videoID string) (string, error)
}

// Downloader grabs audio-only streams with yt-dlp.
type Downloader struct {
	cacheDir string
	verbose  bool
}

// NewDownloader creates an audio downloader writing into cacheDir.
func NewDownloader(cacheDir string, verbose bool) *Downloader {
	return &Downloader{cacheDir: cacheDir, verbose: verbose}
}

// Audio downloads the best available audio stream for a video and returns
// the local file path. Each video gets its own artifact named by video ID,
// so concurrent fallback transcriptions never collide; the caller owns the
// file and removes it when done.
func (d *Downloader) Audio(ctx context.Context, videoID string) (string, error) {
	if d.verbose {
		fmt.Printf("Downloading audio for %s...\n", videoID)
	}

	if err := EnsureDirs(d.cacheDir); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	outputPath := filepath.Join(d.cacheDir, "%(id)s.%(ext)s")

	dl := ytdlp.New().
		Format("bestaudio").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("10").
		NoPlaylist().
		Output(outputPath)

	result, err := dl.Run(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		if d.verbose && result != nil {
			fmt.Printf("Audio download error: %v\nStderr: %s\n", err, result.Stderr)
		}
		return "", fmt.Errorf("yt-dlp failed for %s: %w", videoID, err)
	}

	if d.verbose {
		fmt.Println("Audio download completed successfully")
	}

	return filepath.Join(d.cacheDir, videoID+".mp3"), nil
}
