package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddDateFlag adds the target date flag shared by digest-style commands.
func AddDateFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("date", "d", "", "Target publish date, YYYY-MM-DD (default: yesterday UTC)")
}

// AddTranscriptionFlags adds flags related to transcription functionality
func AddTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fallback-whisper", false, "Fallback to Whisper if no captions available (costs money)")
}

// AddOpenAIFlags adds flags related to OpenAI API functionality
func AddOpenAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "OpenAI model to use for summaries")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
}

// TargetDate resolves the --date flag, defaulting to yesterday in UTC.
func TargetDate(cmd *cobra.Command) (string, error) {
	date, err := cmd.Flags().GetString("date")
	if err != nil {
		return "", fmt.Errorf("failed to get date flag: %w", err)
	}
	if date == "" {
		return Yesterday(), nil
	}
	if err := ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.Config().ConfigDir, prompt))

	if app.Config().Verbose {
		if IsLikelyFilePath(prompt) && FileExists(prompt) {
			fmt.Printf("Using custom prompt file: %s\n", prompt)
		} else {
			fmt.Println("Using custom prompt string")
		}
	}

	return nil
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}

// ValidateOpenAIRequirements validates OpenAI API key and model from command flags and config
func ValidateOpenAIRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	if modelFlag != "" {
		if err := ValidateModel(modelFlag); err != nil {
			return err
		}
		config.DigestModel = modelFlag
	} else if err := ValidateModel(config.DigestModel); err != nil {
		return fmt.Errorf("invalid model in config: %w", err)
	}

	return nil
}

// ValidateYouTubeRequirements checks the Data API key needed for discovery.
func ValidateYouTubeRequirements(config *Config) error {
	return ValidateYouTubeAPIKey(config.YouTubeAPIKey)
}

// ValidateWatchList ensures at least one handle is configured.
func ValidateWatchList(config *Config) error {
	if len(config.WatchList) == 0 {
		return fmt.Errorf("watch_list is empty - add creator handles to config.toml")
	}
	return nil
}
