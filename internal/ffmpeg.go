package internal

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Splitter divides audio files into chunks small enough for the Whisper API.
type Splitter struct {
	cmdRunner CommandRunner
	tempDir   string
}

// NewSplitter creates an audio splitter using ffmpeg/ffprobe.
func NewSplitter(cmdRunner CommandRunner, tempDir string) *Splitter {
	return &Splitter{cmdRunner: cmdRunner, tempDir: tempDir}
}

// Duration returns the audio file duration in seconds.
func (s *Splitter) Duration(ctx context.Context, audioFile string) (float64, error) {
	output, err := s.cmdRunner.Run(ctx, "ffprobe",
		"-i", audioFile,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0")
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}
	return duration, nil
}

// Split cuts an audio file into numChunks equal-length pieces and returns
// their paths. On failure any chunks already written are removed.
func (s *Splitter) Split(ctx context.Context, audioFile string, numChunks int) ([]string, error) {
	if err := EnsureDirs(s.tempDir); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	duration, err := s.Duration(ctx, audioFile)
	if err != nil {
		return nil, fmt.Errorf("getting audio duration: %w", err)
	}

	chunkDuration := int(math.Ceil(duration / float64(numChunks)))
	chunks := make([]string, 0, numChunks)

	for i := range numChunks {
		start := i * chunkDuration
		output := filepath.Join(s.tempDir, fmt.Sprintf("%s_chunk_%d.mp3", filepath.Base(audioFile), i))

		if err := s.chunk(ctx, audioFile, start, chunkDuration, output); err != nil {
			cleanupFiles(chunks...)
			return nil, fmt.Errorf("creating chunk %d: %w", i, err)
		}
		chunks = append(chunks, output)
	}

	return chunks, nil
}

// chunk extracts one segment without re-encoding.
func (s *Splitter) chunk(ctx context.Context, audioFile string, start, duration int, output string) error {
	cmdOutput, err := s.cmdRunner.Run(ctx, "ffmpeg",
		"-v", "quiet",
		"-i", audioFile,
		"-ss", strconv.Itoa(start),
		"-t", strconv.Itoa(duration),
		"-c:a", "copy",
		"-y", output)
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(cmdOutput))
	}
	return nil
}
