package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yclin/tubebrief/internal"
)

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript [video ID]",
	Short: "Get one video's transcript (captions or Whisper fallback)",
	Example: `  # Transcript from YouTube captions
  tubebrief transcript tAP1eZYEuKA

  # Save transcript to file
  tubebrief transcript tAP1eZYEuKA -o transcript.txt

  # Use Whisper if no captions available (costs money)
  tubebrief transcript tAP1eZYEuKA --fallback-whisper`,
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

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
