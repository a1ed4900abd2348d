package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"course-agent/catalog"
	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

// ValidationError is a user-facing publish precondition violation.
type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

type CourseService struct {
	api      *api.Client
	validate *validator.Validate
}

func NewCourseService(client *api.Client) *CourseService {
	return &CourseService{
		api:      client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Tree mutations. Each returns a new course value; the input is never
// modified, so callers can keep the previous tree for undo.

func AddSection(c entities.Course, title string) entities.Course {
	c = cloneCourse(c)
	c.Sections = append(c.Sections, entities.CourseSection{
		ID:    uuid.New(),
		Title: title,
	})
	renumber(&c)
	return c
}

func UpdateSection(c entities.Course, sectionID uuid.UUID, title string) entities.Course {
	c = cloneCourse(c)
	if s := c.FindSection(sectionID); s != nil {
		s.Title = title
	}
	return c
}

// DeleteSection removes a section and all of its lessons. If the active
// lesson pointed into the deleted section it is cleared as well.
func DeleteSection(c entities.Course, sectionID uuid.UUID) entities.Course {
	c = cloneCourse(c)
	kept := c.Sections[:0]
	for _, s := range c.Sections {
		if s.ID != sectionID {
			kept = append(kept, s)
			continue
		}
		if c.ActiveLessonID != nil {
			for _, l := range s.Lessons {
				if l.ID == *c.ActiveLessonID {
					c.ActiveLessonID = nil
					break
				}
			}
		}
	}
	c.Sections = kept
	renumber(&c)
	return c
}

func AddLesson(c entities.Course, sectionID uuid.UUID, lesson entities.Lesson) entities.Course {
	c = cloneCourse(c)
	if s := c.FindSection(sectionID); s != nil {
		if lesson.ID == uuid.Nil {
			lesson.ID = uuid.New()
		}
		s.Lessons = append(s.Lessons, lesson)
	}
	renumber(&c)
	return c
}

func UpdateLesson(c entities.Course, sectionID uuid.UUID, lesson entities.Lesson) entities.Course {
	c = cloneCourse(c)
	if s := c.FindSection(sectionID); s != nil {
		for i := range s.Lessons {
			if s.Lessons[i].ID == lesson.ID {
				lesson.Order = s.Lessons[i].Order
				s.Lessons[i] = lesson
				break
			}
		}
	}
	return c
}

func DeleteLesson(c entities.Course, sectionID, lessonID uuid.UUID) entities.Course {
	c = cloneCourse(c)
	if s := c.FindSection(sectionID); s != nil {
		kept := s.Lessons[:0]
		for _, l := range s.Lessons {
			if l.ID != lessonID {
				kept = append(kept, l)
			}
		}
		s.Lessons = kept
	}
	if c.ActiveLessonID != nil && *c.ActiveLessonID == lessonID {
		c.ActiveLessonID = nil
	}
	renumber(&c)
	return c
}

// MoveSection reorders a section by array position.
func MoveSection(c entities.Course, from, to int) entities.Course {
	c = cloneCourse(c)
	if from < 0 || from >= len(c.Sections) || to < 0 || to >= len(c.Sections) {
		return c
	}
	s := c.Sections[from]
	c.Sections = append(c.Sections[:from], c.Sections[from+1:]...)
	c.Sections = append(c.Sections[:to], append([]entities.CourseSection{s}, c.Sections[to:]...)...)
	renumber(&c)
	return c
}

// MoveLesson reorders a lesson inside its section by array position.
func MoveLesson(c entities.Course, sectionID uuid.UUID, from, to int) entities.Course {
	c = cloneCourse(c)
	s := c.FindSection(sectionID)
	if s == nil || from < 0 || from >= len(s.Lessons) || to < 0 || to >= len(s.Lessons) {
		return c
	}
	l := s.Lessons[from]
	s.Lessons = append(s.Lessons[:from], s.Lessons[from+1:]...)
	s.Lessons = append(s.Lessons[:to], append([]entities.Lesson{l}, s.Lessons[to:]...)...)
	renumber(&c)
	return c
}

func cloneCourse(c entities.Course) entities.Course {
	sections := make([]entities.CourseSection, len(c.Sections))
	copy(sections, c.Sections)
	for i := range sections {
		lessons := make([]entities.Lesson, len(sections[i].Lessons))
		copy(lessons, sections[i].Lessons)
		sections[i].Lessons = lessons
	}
	c.Sections = sections
	return c
}

func renumber(c *entities.Course) {
	for i := range c.Sections {
		c.Sections[i].Order = i
		for j := range c.Sections[i].Lessons {
			c.Sections[i].Lessons[j].Order = j
		}
	}
}

// ValidatePublish runs the client-side publish checklist: title,
// description, a known category, at least one section and at least one
// lesson overall. Violations are user-facing validation errors, never a
// network call.
func (s *CourseService) ValidatePublish(c entities.Course) error {
	var verrs ValidationErrors

	if err := s.validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verrs = append(verrs, ValidationError{
					Field:   strings.ToLower(fe.Field()),
					Message: "this field is required",
				})
			}
		} else {
			return err
		}
	}

	if c.Category != "" {
		if _, ok := catalog.Find(c.Category); !ok {
			verrs = append(verrs, ValidationError{
				Field:   "category",
				Message: fmt.Sprintf("unknown category %q", c.Category),
			})
		}
	}

	if len(c.Sections) == 0 {
		verrs = append(verrs, ValidationError{Field: "sections", Message: "add at least one section"})
	} else if c.LessonCount() == 0 {
		verrs = append(verrs, ValidationError{Field: "lessons", Message: "add at least one lesson"})
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// SaveDraft persists the tree without publish preconditions. A course
// with a zero ID is created, otherwise updated in place.
func (s *CourseService) SaveDraft(ctx context.Context, c entities.Course) (*entities.Course, error) {
	var saved entities.Course
	var err error
	if c.ID == uuid.Nil {
		err = s.api.Post(ctx, "/courses", c, &saved)
	} else {
		err = s.api.Put(ctx, "/courses/"+c.ID.String(), c, &saved)
	}
	if err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("course_id", saved.ID.String()).Msg("draft saved")
	return &saved, nil
}

// Publish validates client-side, saves the current tree, then flips the
// course live.
func (s *CourseService) Publish(ctx context.Context, c entities.Course) (*entities.Course, error) {
	if err := s.ValidatePublish(c); err != nil {
		return nil, err
	}
	saved, err := s.SaveDraft(ctx, c)
	if err != nil {
		return nil, err
	}
	var published entities.Course
	if err := s.api.Post(ctx, "/courses/"+saved.ID.String()+"/publish", nil, &published); err != nil {
		return nil, fmt.Errorf("publish course: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("course_id", published.ID.String()).Msg("course published")
	return &published, nil
}

func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*entities.Course, error) {
	var c entities.Course
	if err := s.api.Get(ctx, "/courses/"+id.String(), &c); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &c, nil
}

func (s *CourseService) List(ctx context.Context) ([]entities.Course, error) {
	var courses []entities.Course
	if err := s.api.Get(ctx, "/courses", &courses); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.api.Delete(ctx, "/courses/"+id.String(), nil); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (s *CourseService) Rate(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	req := dto.RateCourseRequest{Rating: rating, Comment: comment}
	if err := s.api.Post(ctx, "/courses/"+id.String()+"/rate", req, nil); err != nil {
		return fmt.Errorf("rate course: %w", err)
	}
	return nil
}
