package entities

import (
	"time"

	"github.com/google/uuid"

	"course-agent/constant"
)

type LiveSession struct {
	ID           uuid.UUID              `json:"id"`
	InstructorID uuid.UUID              `json:"instructor_id"`
	CourseID     *uuid.UUID             `json:"course_id,omitempty"`
	RoomID       int64                  `json:"room_id"`
	Status       constant.SessionStatus `json:"status"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	ScheduledAt  time.Time              `json:"scheduled_at"`
	StartedAt    *time.Time             `json:"started_at,omitempty"`
	EndedAt      *time.Time             `json:"ended_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`

	RecordingStatus   constant.RecordingStatus `json:"recording_status"`
	RecordingURL      *string                  `json:"recording_url,omitempty"`
	RecordingDuration *int                     `json:"recording_duration,omitempty"`
	TotalChunks       int                      `json:"total_chunks"`
}

// Participant exists only while the session is live.
type Participant struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}
