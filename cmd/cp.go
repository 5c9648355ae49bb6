package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/yclin/tubebrief/internal"
)

// cpCmd copies a transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [video ID]",
	Short: "Copy one video's transcript to the clipboard",
	Example: `  # Copy transcript from YouTube captions
  tubebrief cp tAP1eZYEuKA

  # Use Whisper if no captions available (costs money)
  tubebrief cp tAP1eZYEuKA --fallback-whisper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.EnsureDirs(config.TranscriptsDir); err != nil {
			return err
		}

		app, err := internal.NewApp(cmd.Context(), config)
		if err != nil {
			return err
		}

		transcript, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
