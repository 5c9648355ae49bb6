package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yclin/tubebrief/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tubebrief",
	Short: "Daily digest of your watched creators' new videos",
	Long: `Tubebrief watches a configured list of creator channels, finds the videos
they published on a target date, resolves a transcript for each one
(YouTube captions first, Whisper speech-to-text as a fallback), and
produces an AI-summarized digest.

The digest is printed to the terminal and can optionally be delivered
to a Telegram chat.`,
	Example: `  # Digest for yesterday (UTC)
  tubebrief

  # Digest for a specific date
  tubebrief --date 2024-05-02

  # Send the digest to the configured Telegram chat
  tubebrief --date 2024-05-02 --telegram

  # Use a specific OpenAI model and custom prompt
  tubebrief -m gpt-4o -p "tldr: {{.Transcript}}"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleVerboseFlag(cmd, config)
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateYouTubeRequirements(config); err != nil {
			return err
		}
		if err := internal.ValidateOpenAIRequirements(cmd, config); err != nil {
			return err
		}
		if err := internal.ValidateWatchList(config); err != nil {
			return err
		}

		date, err := internal.TargetDate(cmd)
		if err != nil {
			return err
		}

		app, err := internal.NewApp(cmd.Context(), config)
		if err != nil {
			return err
		}
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		digest, err := app.Digest(cmd.Context(), date)
		if err != nil {
			return err
		}

		if err := internal.PrintDigest(digest); err != nil {
			return err
		}

		if sendTelegram, _ := cmd.Flags().GetBool("telegram"); sendTelegram {
			if err := app.DeliverDigest(digest); err != nil {
				return fmt.Errorf("delivering digest: %w", err)
			}
			if !config.Quiet {
				fmt.Println("Digest sent to Telegram")
			}
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize configuration with Viper
	config = internal.InitConfig()

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	// Ensure default config exists in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// Ensure default prompt exists in XDG config directory
	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal. Cleaning up and shutting down...")

		cancel()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cleanupCancel()

		cleanupDone := make(chan struct{})
		go func() {
			if err := internal.CleanupTempDir(config.TempDir); err != nil {
				fmt.Fprintf(os.Stderr, "Error cleaning up temporary files: %v\n", err)
			}
			close(cleanupDone)
		}()

		select {
		case <-cleanupDone:
		case <-cleanupCtx.Done():
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out, forcing exit")
		}

		os.Exit(0)
	}()

	// Set context on root command
	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddDateFlag(rootCmd)
	internal.AddOpenAIFlags(rootCmd)
	rootCmd.Flags().BoolP("telegram", "t", false, "Send the digest to the configured Telegram chat")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/tubebrief/config.toml)")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
