package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/server"
	"course-agent/service"
)

// watch drives the playback tracker against the wall clock. Useful for
// verifying a video's renditions and exercising the watch-progress
// endpoint without a browser.
func watch(cfg *config.Config) *cobra.Command {
	var quality string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "watch [video-id]",
		Short: "play a video headlessly, reporting watch progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			video, err := service.NewUploadService(client).GetVideo(ctx, args[0])
			if err != nil {
				return err
			}
			if quality == "" {
				qualities := video.Qualities()
				if len(qualities) == 0 {
					return fmt.Errorf("video %s has no playback renditions yet (status %s)", video.ID, video.Status)
				}
				quality = qualities[0]
			}

			player := service.NewPlayer(client)
			defer player.Close()

			if err := player.Load(video, quality); err != nil {
				return err
			}
			if err := player.Ready(); err != nil {
				return err
			}
			if err := player.Play(); err != nil {
				return err
			}
			fmt.Printf("playing %s at %s for %s\n", video.Title, quality, duration)

			select {
			case <-time.After(duration):
			case <-ctx.Done():
			}
			player.End(ctx)
			fmt.Printf("watched up to %s\n", player.Position().Round(time.Second))
			return nil
		},
	}

	cmd.Flags().StringVar(&quality, "quality", "", "rendition to play, defaults to the first available")
	cmd.Flags().DurationVar(&duration, "duration", time.Minute, "how long to play")
	return cmd
}
