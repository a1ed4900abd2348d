package entities

import (
	"time"

	"github.com/google/uuid"

	"course-agent/constant"
)

type QuizQuestion struct {
	ID          uuid.UUID `json:"id"`
	Prompt      string    `json:"prompt"`
	Options     []string  `json:"options"`
	AnswerIndex int       `json:"answer_index"`
}

type Lesson struct {
	ID       uuid.UUID           `json:"id"`
	Title    string              `json:"title"`
	Order    int                 `json:"order"`
	Type     constant.LessonType `json:"type"`
	VideoID  *uuid.UUID          `json:"video_id,omitempty"`
	Content  string              `json:"content,omitempty"`
	Duration int                 `json:"duration,omitempty"`
	Preview  bool                `json:"preview"`
	Quiz     []QuizQuestion      `json:"quiz,omitempty"`
}

type CourseSection struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Order   int       `json:"order"`
	Lessons []Lesson  `json:"lessons"`
}

// Course is the authoring tree: ordered sections holding ordered
// lessons. Section and lesson Order fields determine display sequence.
// The tree is mutated locally and only reaches the backend on an
// explicit save or publish.
type Course struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title" validate:"required"`
	Description    string          `json:"description" validate:"required"`
	Category       string          `json:"category" validate:"required"`
	Price          float64         `json:"price"`
	Thumbnail      string          `json:"thumbnail,omitempty"`
	Published      bool            `json:"published"`
	Rating         float64         `json:"rating,omitempty"`
	Sections       []CourseSection `json:"sections"`
	ActiveLessonID *uuid.UUID      `json:"active_lesson_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LessonCount counts lessons across all sections.
func (c *Course) LessonCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Lessons)
	}
	return n
}

// FindSection returns the section with the given id, or nil.
func (c *Course) FindSection(id uuid.UUID) *CourseSection {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}
