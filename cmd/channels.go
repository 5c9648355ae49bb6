package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yclin/tubebrief/internal"
)

// channelsCmd represents the channels command
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Sync the channel cache against the watch-list",
	Long: `Reconcile the persistent handle -> channel ID cache with the configured
watch-list: handles that are no longer watched are dropped, new handles are
resolved through the YouTube Data API, and the result is printed.`,
	Example: `  # Sync and show the channel cache
  tubebrief channels

  # Machine-readable output
  tubebrief channels --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateYouTubeRequirements(config); err != nil {
			return err
		}

		app, err := internal.NewApp(cmd.Context(), config)
		if err != nil {
			return err
		}

		channels, err := app.ResolveChannels(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(channels, "", "    ")
			if err != nil {
				return fmt.Errorf("encoding channels: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, handle := range config.WatchList {
			channelID := channels[handle]
			if channelID == nil {
				fmt.Fprintf(os.Stderr, "%s\t(unresolved)\n", handle)
				continue
			}
			fmt.Printf("%s\t%s\n", handle, *channelID)
		}
		return nil
	},
}

func init() {
	channelsCmd.Flags().Bool("json", false, "Output the cache as JSON")
	rootCmd.AddCommand(channelsCmd)
}
