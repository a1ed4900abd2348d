package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/constant"
	"course-agent/entities"
	"course-agent/server"
	"course-agent/service"
)

func constantLessonType(s string) constant.LessonType {
	switch s {
	case "article":
		return constant.LessonTypeArticle
	case "quiz":
		return constant.LessonTypeQuiz
	default:
		return constant.LessonTypeVideo
	}
}

// Course drafts are edited as local JSON trees and only hit the backend
// on save-draft or publish.
func course(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "author and publish courses",
	}
	cmd.AddCommand(
		courseNew(),
		courseAddSection(),
		courseAddLesson(),
		courseShow(),
		courseSaveDraft(cfg),
		coursePublish(cfg),
		courseList(cfg),
	)
	return cmd
}

func readDraft(path string) (entities.Course, error) {
	var c entities.Course
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read draft: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse draft: %w", err)
	}
	return c, nil
}

func writeDraft(path string, c entities.Course) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func courseNew() *cobra.Command {
	var title, description, category string
	cmd := &cobra.Command{
		Use:   "new [draft.json]",
		Short: "create a local course draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := entities.Course{
				Title:       title,
				Description: description,
				Category:    category,
			}
			return writeDraft(args[0], c)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "course title")
	cmd.Flags().StringVar(&description, "description", "", "course description")
	cmd.Flags().StringVar(&category, "category", "", "course category")
	return cmd
}

func courseAddSection() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "add-section [draft.json]",
		Short: "append a section to a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readDraft(args[0])
			if err != nil {
				return err
			}
			c = service.AddSection(c, title)
			return writeDraft(args[0], c)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "section title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func courseAddLesson() *cobra.Command {
	var sectionID, title, lessonType, content, videoID string
	cmd := &cobra.Command{
		Use:   "add-lesson [draft.json]",
		Short: "append a lesson to a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readDraft(args[0])
			if err != nil {
				return err
			}
			sid, err := uuid.Parse(sectionID)
			if err != nil {
				return fmt.Errorf("invalid section id: %w", err)
			}
			lesson := entities.Lesson{
				Title:   title,
				Type:    constantLessonType(lessonType),
				Content: content,
			}
			if videoID != "" {
				vid, err := uuid.Parse(videoID)
				if err != nil {
					return fmt.Errorf("invalid video id: %w", err)
				}
				lesson.VideoID = &vid
			}
			c = service.AddLesson(c, sid, lesson)
			return writeDraft(args[0], c)
		},
	}
	cmd.Flags().StringVar(&sectionID, "section", "", "section id")
	cmd.Flags().StringVar(&title, "title", "", "lesson title")
	cmd.Flags().StringVar(&lessonType, "type", "video", "lesson type: video, article or quiz")
	cmd.Flags().StringVar(&content, "content", "", "article body")
	cmd.Flags().StringVar(&videoID, "video", "", "uploaded video id")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func courseShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show [draft.json]",
		Short: "print a draft's tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readDraft(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s), %d sections, %d lessons\n", c.Title, c.Category, len(c.Sections), c.LessonCount())
			for _, s := range c.Sections {
				fmt.Printf("  %d. %s (%s)\n", s.Order+1, s.Title, s.ID)
				for _, l := range s.Lessons {
					fmt.Printf("     %d.%d %s [%s] (%s)\n", s.Order+1, l.Order+1, l.Title, l.Type, l.ID)
				}
			}
			return nil
		},
	}
}

func courseSaveDraft(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "save-draft [draft.json]",
		Short: "save the draft to the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			c, err := readDraft(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			saved, err := service.NewCourseService(client).SaveDraft(ctx, c)
			if err != nil {
				return err
			}
			// keep the backend-assigned id in the local draft
			return writeDraft(args[0], *saved)
		},
	}
}

func coursePublish(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [draft.json]",
		Short: "validate and publish the draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			c, err := readDraft(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			published, err := service.NewCourseService(client).Publish(ctx, c)
			if err != nil {
				return err
			}
			fmt.Printf("course %s published\n", published.ID)
			return writeDraft(args[0], *published)
		},
	}
}

func courseList(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			courses, err := service.NewCourseService(client).List(ctx)
			if err != nil {
				return err
			}
			for _, c := range courses {
				state := "draft"
				if c.Published {
					state = "published"
				}
				fmt.Printf("%s  %-40s %-12s %s\n", c.ID, c.Title, c.Category, state)
			}
			return nil
		},
	}
}
