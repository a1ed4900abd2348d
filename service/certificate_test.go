package service

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

func sampleTemplate() entities.CertificateTemplate {
	return entities.CertificateTemplate{
		ID:     "classic",
		Name:   "Classic",
		Width:  1200,
		Height: 900,
		Elements: []entities.TemplateElement{
			{ID: "title", Text: "Certificate of Completion", X: 600, Y: 200},
			{ID: "student", Text: "Awarded to {{studentName}}", X: 600, Y: 400},
			{ID: "course", Text: "for completing {{courseName}} on {{date}}", X: 600, Y: 500},
			{ID: "code", Text: "ID: {{certificateId}}", X: 600, Y: 800},
		},
	}
}

func TestBuildPreviewInterpolation(t *testing.T) {
	certID := uuid.New()
	preview := BuildPreview(sampleTemplate(), PreviewData{
		StudentName: "Ada Lovelace",
		CourseName:  "Practical Go",
		IssuedAt:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}, "https://learn.example.com", certID)

	require.Len(t, preview.Elements, 4)
	assert.Equal(t, "Certificate of Completion", preview.Elements[0].Text)
	assert.Equal(t, "Awarded to Ada Lovelace", preview.Elements[1].Text)
	assert.Equal(t, "for completing Practical Go on June 15, 2025", preview.Elements[2].Text)
	assert.Equal(t, "ID: "+certID.String(), preview.Elements[3].Text)
}

func TestBuildPreviewLeavesTemplateUntouched(t *testing.T) {
	tpl := sampleTemplate()
	BuildPreview(tpl, PreviewData{StudentName: "X", CourseName: "Y"}, "https://learn.example.com", uuid.New())
	assert.Equal(t, "Awarded to {{studentName}}", tpl.Elements[1].Text)
}

func TestVerificationURL(t *testing.T) {
	certID := uuid.New()
	want := "https://learn.example.com/verify-certificate/" + certID.String()
	assert.Equal(t, want, VerificationURL("https://learn.example.com", certID))
	assert.Equal(t, want, VerificationURL("https://learn.example.com/", certID), "trailing slash must not double")
}

func TestQRPNGEncodesURL(t *testing.T) {
	svc := NewCertificateService(nil, "https://learn.example.com")
	png, err := svc.QRPNG(uuid.New(), 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")), "output must be a PNG")
}

func TestTemplatesAndGenerate(t *testing.T) {
	certID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /certificates/templates":
			writeEnvelope(t, w, true, []entities.CertificateTemplate{sampleTemplate()}, "")
		case "GET /certificates/verify/ABC-123":
			writeEnvelope(t, w, true, map[string]any{
				"id":           certID,
				"student_name": "Ada Lovelace",
				"course_name":  "Practical Go",
			}, "")
		case "POST /certificates/generate":
			writeEnvelope(t, w, true, map[string]any{
				"id":                certID,
				"student_name":      "Ada Lovelace",
				"course_name":       "Practical Go",
				"template_id":       "classic",
				"verification_code": "ABC-123",
			}, "")
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	require.NoError(t, err)
	svc := NewCertificateService(client, "https://learn.example.com")

	templates, err := svc.Templates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "classic", templates[0].ID)

	cert, err := svc.Generate(context.Background(), dto.GenerateCertificateRequest{
		StudentID:   uuid.New(),
		StudentName: "Ada Lovelace",
		CourseID:    uuid.New(),
		CourseName:  "Practical Go",
		TemplateID:  "classic",
	})
	require.NoError(t, err)
	assert.Equal(t, certID, cert.ID)
	assert.Equal(t, "ABC-123", cert.VerificationCode)

	verified, err := svc.Verify(context.Background(), cert.VerificationCode)
	require.NoError(t, err)
	assert.Equal(t, certID, verified.ID)
	assert.Equal(t, "Ada Lovelace", verified.StudentName)
}
