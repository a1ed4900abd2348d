package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"course-agent/constant"
)

// Envelope is the wire wrapper every backend endpoint responds with.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

type InitializeUploadRequest struct {
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	ChunkSize   int64  `json:"chunkSize"`
	TotalChunks int    `json:"totalChunks"`
	ContentType string `json:"contentType"`
}

type InitializeUploadResponse struct {
	SessionID string `json:"sessionId"`
}

type ChunkAck struct {
	SessionID  string `json:"sessionId"`
	ChunkIndex int    `json:"chunkIndex"`
	Received   bool   `json:"received"`
}

// VideoMetadata travels with the completion call so the backend can
// attach the reassembled file to the right lesson and apply the
// requested protection flags.
type VideoMetadata struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	CourseID        *uuid.UUID `json:"courseId,omitempty"`
	LessonID        *uuid.UUID `json:"lessonId,omitempty"`
	Watermark       bool       `json:"watermark"`
	DRM             bool       `json:"drmEnabled"`
	DownloadEnabled bool       `json:"downloadEnabled"`
}

type CompleteUploadRequest struct {
	SessionID string        `json:"sessionId"`
	Metadata  VideoMetadata `json:"metadata"`
}

type WatchProgressRequest struct {
	VideoID   uuid.UUID `json:"videoId"`
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	Completed bool      `json:"completed"`
}

type RateCourseRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type GenerateCertificateRequest struct {
	StudentID   uuid.UUID `json:"studentId"`
	StudentName string    `json:"studentName"`
	CourseID    uuid.UUID `json:"courseId"`
	CourseName  string    `json:"courseName"`
	TemplateID  string    `json:"templateId"`
}

type ScheduleSessionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CourseID    uuid.UUID `json:"courseId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

type RecordingCompleteRequest struct {
	TotalChunks     int `json:"totalChunks"`
	DurationSeconds int `json:"durationSeconds"`
}

type CardPaymentRequest struct {
	CourseID        uuid.UUID `json:"courseId"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	PaymentMethodID string    `json:"paymentMethodId"`
}

type MobileMoneyRequest struct {
	CourseID    uuid.UUID `json:"courseId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Provider    string    `json:"provider"`
	PhoneNumber string    `json:"phoneNumber"`
}

type BankTransferRequest struct {
	CourseID uuid.UUID `json:"courseId"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}

type CryptoPaymentRequest struct {
	CourseID uuid.UUID `json:"courseId"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}

// VideoStatusMessage is published by the media backend as transcoding
// advances. Consumed in agent mode as the push alternative to polling.
type VideoStatusMessage struct {
	VideoID  uuid.UUID            `json:"videoId"`
	Status   constant.VideoStatus `json:"status"`
	Progress int                  `json:"progress"`
	Message  string               `json:"message,omitempty"`
}

// UploadStatus is the snapshot served by the agent's /uploads endpoint.
type UploadStatus struct {
	ID        string               `json:"id"`
	FileName  string               `json:"fileName"`
	Status    constant.VideoStatus `json:"status"`
	Progress  int                  `json:"progress"`
	UpdatedAt time.Time            `json:"updatedAt"`
}
