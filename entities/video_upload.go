package entities

import (
	"time"

	"github.com/google/uuid"

	"course-agent/constant"
)

type Caption struct {
	Language string `json:"language"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

// VideoUpload is the backend's record of one uploaded video. It keeps
// changing while the backend reassembles and transcodes; once the
// status is ready it no longer moves.
type VideoUpload struct {
	ID              uuid.UUID            `json:"id"`
	Title           string               `json:"title"`
	FileName        string               `json:"file_name"`
	FileSize        int64                `json:"file_size"`
	Status          constant.VideoStatus `json:"status"`
	Progress        int                  `json:"progress"`
	PlaybackURLs    map[string]string    `json:"playback_urls"`
	Captions        []Caption            `json:"captions,omitempty"`
	Watermark       bool                 `json:"watermark"`
	DRM             bool                 `json:"drm_enabled"`
	DownloadEnabled bool                 `json:"download_enabled"`
	CourseID        *uuid.UUID           `json:"course_id,omitempty"`
	LessonID        *uuid.UUID           `json:"lesson_id,omitempty"`
	Duration        float64              `json:"duration"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Qualities lists the available playback renditions, e.g. "720p".
func (v *VideoUpload) Qualities() []string {
	out := make([]string, 0, len(v.PlaybackURLs))
	for q := range v.PlaybackURLs {
		out = append(out, q)
	}
	return out
}
