package entities

import (
	"time"

	"github.com/google/uuid"
)

// TemplateElement is one positioned text element of a certificate
// layout. Text may contain placeholders such as {{studentName}} that
// are interpolated when a preview is built.
type TemplateElement struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	FontSize   int    `json:"font_size"`
	FontFamily string `json:"font_family,omitempty"`
	Color      string `json:"color,omitempty"`
	Align      string `json:"align,omitempty"`
}

type CertificateTemplate struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Background string            `json:"background"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Elements   []TemplateElement `json:"elements"`
}

// Certificate binds one student/course pair to a template instance.
// Created once by the backend per generation request, immutable after.
type Certificate struct {
	ID               uuid.UUID `json:"id"`
	StudentID        uuid.UUID `json:"student_id"`
	StudentName      string    `json:"student_name"`
	CourseID         uuid.UUID `json:"course_id"`
	CourseName       string    `json:"course_name"`
	TemplateID       string    `json:"template_id"`
	VerificationCode string    `json:"verification_code"`
	DownloadURL      string    `json:"download_url,omitempty"`
	IssuedAt         time.Time `json:"issued_at"`
}
