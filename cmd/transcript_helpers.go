package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yclin/tubebrief/internal"
)

// fetchTranscript retrieves a transcript for the given video ID and optionally
// falls back to Whisper.
func fetchTranscript(cmd *cobra.Command, app *internal.App, videoID string) (string, error) {
	if !internal.IsValidYouTubeID(videoID) {
		return "", fmt.Errorf("%q does not look like a YouTube video ID", videoID)
	}

	if text := internal.LoadTranscript(videoID, config.TranscriptsDir); text != "" {
		return text, nil
	}

	result := app.ResolveCaptions(cmd.Context(), videoID)
	if result.Available() {
		if saveErr := internal.SaveTranscript(videoID, result.Text, config.TranscriptsDir); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", saveErr)
		}
		return result.Text, nil
	}

	fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
	if !fallbackWhisper {
		return "", fmt.Errorf("no captions available for %s (%s)", videoID, result.Status)
	}

	if err := internal.ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
		return "", err
	}

	transcript := app.TranscribeFallback(cmd.Context(), videoID)
	if transcript == "" {
		return "", fmt.Errorf("whisper fallback produced no transcript for %s", videoID)
	}

	if saveErr := internal.SaveTranscript(videoID, transcript, config.TranscriptsDir); saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", saveErr)
	}

	return transcript, nil
}
