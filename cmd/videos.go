package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yclin/tubebrief/internal"
)

// videosCmd represents the videos command
var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List watched channels' videos for a date",
	Long: `Discover the videos published by the watched channels on the target date
without resolving transcripts or summaries. Useful to preview what a digest
run would pick up, and for checking the date-bounded listing.`,
	Example: `  # Videos published yesterday (UTC)
  tubebrief videos

  # Videos for a specific date, as JSON
  tubebrief videos --date 2024-05-02 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateYouTubeRequirements(config); err != nil {
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

		videos, err := app.DiscoverVideos(cmd.Context(), date)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(videos, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding videos: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(videos) == 0 {
			fmt.Println(internal.EmptyDigestNotice(date))
			return nil
		}
		for _, video := range videos {
			fmt.Printf("%s\t%s\t%s\n", video.VideoID, video.ChannelTitle, video.Title)
		}
		return nil
	},
}

func init() {
	internal.AddDateFlag(videosCmd)
	videosCmd.Flags().Bool("json", false, "Output records as JSON")
	rootCmd.AddCommand(videosCmd)
}
