package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/dto"
	"course-agent/server"
	"course-agent/service"
)

func upload(cfg *config.Config) *cobra.Command {
	var (
		title           string
		description     string
		courseID        string
		lessonID        string
		watermark       bool
		drm             bool
		downloadEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "upload a video in chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			meta := dto.VideoMetadata{
				Title:           title,
				Description:     description,
				Watermark:       watermark,
				DRM:             drm,
				DownloadEnabled: downloadEnabled,
			}
			if courseID != "" {
				id, err := uuid.Parse(courseID)
				if err != nil {
					return fmt.Errorf("invalid course id: %w", err)
				}
				meta.CourseID = &id
			}
			if lessonID != "" {
				id, err := uuid.Parse(lessonID)
				if err != nil {
					return fmt.Errorf("invalid lesson id: %w", err)
				}
				meta.LessonID = &id
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("uploading %s (%s)\n", args[0], humanize.Bytes(uint64(info.Size())))

			bar := progressbar.NewOptions(100,
				progressbar.OptionSetDescription("upload"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			svc := service.NewUploadService(client, service.WithChunkSize(cfg.Upload.ChunkSize))
			video, err := svc.UploadVideo(ctx, args[0], meta, func(fraction float64) {
				_ = bar.Set(int(fraction * 100))
			})
			if err != nil {
				return err
			}

			fmt.Printf("video %s accepted, status: %s\n", video.ID, video.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "video title")
	cmd.Flags().StringVar(&description, "description", "", "video description")
	cmd.Flags().StringVar(&courseID, "course", "", "course id to attach to")
	cmd.Flags().StringVar(&lessonID, "lesson", "", "lesson id to attach to")
	cmd.Flags().BoolVar(&watermark, "watermark", false, "request watermarking")
	cmd.Flags().BoolVar(&drm, "drm", false, "request DRM packaging")
	cmd.Flags().BoolVar(&downloadEnabled, "downloadable", false, "allow downloads")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
