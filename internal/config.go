package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings
type Config struct {
	// User configurable settings
	WatchList      []string
	Languages      []string
	DigestModel    string
	TranscriptsDir string
	ChannelsFile   string
	APITimeout     time.Duration
	SummaryTimeout time.Duration
	WhisperTimeout time.Duration
	Verbose        bool
	Quiet          bool
	Prompt         string
	YouTubeAPIKey  string
	OpenAIAPIKey   string
	TelegramToken  string
	TelegramChatID int64
	MCPLogEnabled  bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
	TempDir   string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// WhisperLimit is the maximum file size accepted by OpenAI's Whisper API (25 MiB)
const WhisperLimit int64 = 25 << 20

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt checks if a prompt.txt file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "tubebrief")
	dataDir := filepath.Join(xdg.DataHome, "tubebrief")
	cacheDir := filepath.Join(xdg.CacheHome, "tubebrief")

	// directories for transcripts and temp files
	transcriptsDir := filepath.Join(dataDir, "transcripts")
	tempDir := filepath.Join(cacheDir, "temp_chunks")

	// Initialize viper
	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("watch_list", []string{})
	v.SetDefault("languages", []string{"zh-Hant", "zh-Hans", "en", "zh-CN"})
	v.SetDefault("digest_model", "gpt-4o-mini")
	v.SetDefault("transcripts_dir", transcriptsDir)
	v.SetDefault("channels_file", filepath.Join(dataDir, "channels.json"))
	v.SetDefault("api_timeout", 30*time.Second)
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("whisper_timeout", 10*time.Minute)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("telegram_chat_id", int64(0))

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("TUBEBRIEF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("_", "_"))

	// API credentials are commonly set as bare environment variables
	_ = v.BindEnv("youtube_api_key", "YOUTUBE_API_KEY")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram_chat_id", "TELEGRAM_CHAT_ID")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	// Create config struct from viper
	config := &Config{
		// User configurable settings
		WatchList:      v.GetStringSlice("watch_list"),
		Languages:      v.GetStringSlice("languages"),
		DigestModel:    v.GetString("digest_model"),
		TranscriptsDir: v.GetString("transcripts_dir"),
		ChannelsFile:   v.GetString("channels_file"),
		APITimeout:     v.GetDuration("api_timeout"),
		SummaryTimeout: v.GetDuration("summary_timeout"),
		WhisperTimeout: v.GetDuration("whisper_timeout"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		Prompt:         v.GetString("prompt"),
		YouTubeAPIKey:  v.GetString("youtube_api_key"),
		OpenAIAPIKey:   v.GetString("openai_api_key"),
		TelegramToken:  v.GetString("telegram_bot_token"),
		TelegramChatID: v.GetInt64("telegram_chat_id"),
		MCPLogEnabled:  v.GetBool("mcp_log_enabled"),

		// Fixed XDG paths
		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
		TempDir:   tempDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}
