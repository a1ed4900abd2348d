package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/dto"
	"course-agent/server"
	"course-agent/service"
)

func session(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "manage live sessions",
	}
	cmd.AddCommand(
		sessionSchedule(cfg),
		sessionList(cfg),
		sessionStart(cfg),
		sessionEnd(cfg),
		sessionUploadRecording(cfg),
	)
	return cmd
}

func newSessionService(cfg *config.Config) (*service.SessionService, error) {
	client, err := newAPIClient(cfg)
	if err != nil {
		return nil, err
	}
	var store service.ChunkStore
	if cfg.Storage != nil {
		store = service.NewMinioChunkStore(cfg.Storage, cfg.StorageBucket)
	}
	return service.NewSessionService(client, store), nil
}

func sessionSchedule(cfg *config.Config) *cobra.Command {
	var title, description, courseID, at string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "schedule a live session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newSessionService(cfg)
			if err != nil {
				return err
			}
			cid, err := uuid.Parse(courseID)
			if err != nil {
				return fmt.Errorf("invalid course id: %w", err)
			}
			when, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("invalid time (want RFC3339): %w", err)
			}
			s, err := svc.Schedule(ctx, dto.ScheduleSessionRequest{
				Title:       title,
				Description: description,
				CourseID:    cid,
				ScheduledAt: when,
			})
			if err != nil {
				return err
			}
			fmt.Printf("session %s scheduled for %s\n", s.ID, s.ScheduledAt)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "session title")
	cmd.Flags().StringVar(&description, "description", "", "session description")
	cmd.Flags().StringVar(&courseID, "course", "", "course id")
	cmd.Flags().StringVar(&at, "at", "", "start time, RFC3339")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func sessionList(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list live sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newSessionService(cfg)
			if err != nil {
				return err
			}
			sessions, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, s := range sessions {
				fmt.Printf("%s  %-40s %-10s %s\n", s.ID, s.Title, s.Status, s.ScheduledAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func sessionStart(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "start [session-id]",
		Short: "go live",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newSessionService(cfg)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %w", err)
			}
			s, err := svc.Start(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("session %s is %s\n", s.ID, s.Status)
			return nil
		},
	}
}

func sessionEnd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "end [session-id]",
		Short: "end a live session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newSessionService(cfg)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %w", err)
			}
			s, err := svc.End(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("session %s is %s\n", s.ID, s.Status)
			return nil
		},
	}
}

func sessionUploadRecording(cfg *config.Config) *cobra.Command {
	var duration int
	cmd := &cobra.Command{
		Use:   "upload-recording [session-id] [chunk-dir]",
		Short: "ship recorded chunks for backend merging",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newSessionService(cfg)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %w", err)
			}
			n, err := svc.UploadRecording(ctx, id, args[1], duration)
			if err != nil {
				return err
			}
			fmt.Printf("%d chunks handed off for merging\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 0, "recording duration in seconds")
	return cmd
}
