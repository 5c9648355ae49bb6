package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

// Yesterday returns yesterday's date in UTC as YYYY-MM-DD, the default
// target date for a digest run.
func Yesterday() string {
	return time.Now().UTC().AddDate(0, 0, -1).Format(dateLayout)
}

// ValidateDate checks that a target date is well-formed YYYY-MM-DD.
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return nil
}

// PublishedDate reduces an RFC3339 publishedAt timestamp to its UTC date.
// The Data API returns timestamps in UTC, so the first ten characters are
// the date; anything shorter is returned as-is.
func PublishedDate(publishedAt string) string {
	if len(publishedAt) < len(dateLayout) {
		return publishedAt
	}
	return publishedAt[:len(dateLayout)]
}

// NormalizeHandle strips the leading @ from a creator handle. The Data API's
// forHandle parameter accepts either form, but the cache is keyed on the
// configured spelling, so only lookups normalize.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	if len(id) != 11 {
		return false
	}
	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, id)
	return matched
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dir ...string) error {
	for _, dir := range dir {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanupFiles removes temporary files
func cleanupFiles(files ...string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove file %s: %v\n", file, err)
		}
	}
}

// CleanupTempDir purges files from a temporary directory
func CleanupTempDir(tempDir string) error {
	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return fmt.Errorf("reading temp directory: %w", err)
	}

	for _, entry := range entries {
		filePath := filepath.Join(tempDir, entry.Name())
		if err := os.Remove(filePath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", filePath, err)
		}
	}

	if err := os.Remove(tempDir); err != nil {
		fmt.Fprintf(os.Stderr, "Note: could not remove temp directory %s: %v\n", tempDir, err)
	}

	return nil
}

// SaveTranscript saves a transcript to the specified directory with standard error handling
func SaveTranscript(videoID, transcript, transcriptsDir string) error {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// LoadTranscript returns a previously saved transcript, or "" when none exists.
func LoadTranscript(videoID, transcriptsDir string) string {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".txt")
	if !FileExists(transcriptPath) {
		return ""
	}
	text, err := os.ReadFile(transcriptPath)
	if err != nil {
		return ""
	}
	return string(text)
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// ValidateModel checks if the model is supported
func ValidateModel(model string) error {
	supportedModels := []string{"gpt-4o", "gpt-4o-mini", "o4-mini", "gpt-4.1-nano"}
	if slices.Contains(supportedModels, model) {
		return nil
	}
	return fmt.Errorf("unsupported model: %s (supported: %s)", model, strings.Join(supportedModels, ", "))
}

// ValidateOpenAIAPIKey checks if the OpenAI API key is set and returns a standardized error if not
func ValidateOpenAIAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key is required - set it in config.toml or OPENAI_API_KEY environment variable")
	}
	return nil
}

// ValidateYouTubeAPIKey checks if the YouTube Data API key is set.
func ValidateYouTubeAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("YouTube Data API key is required - set it in config.toml or YOUTUBE_API_KEY environment variable")
	}
	return nil
}
