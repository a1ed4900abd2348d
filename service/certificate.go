package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

// PreviewData supplies the placeholder values interpolated into a
// template.
type PreviewData struct {
	StudentName string
	CourseName  string
	IssuedAt    time.Time
}

// CertificatePreview is the rendered layout shown before (or after)
// generation, plus the verification URL embedded in the QR code.
type CertificatePreview struct {
	Template        entities.CertificateTemplate
	Elements        []entities.TemplateElement
	VerificationURL string
}

type CertificateService struct {
	api    *api.Client
	origin string
}

// NewCertificateService creates the certificate client. origin is the
// public site origin used to build verification URLs.
func NewCertificateService(client *api.Client, origin string) *CertificateService {
	return &CertificateService{api: client, origin: strings.TrimRight(origin, "/")}
}

// VerificationURL builds {origin}/verify-certificate/{certificateId}.
func VerificationURL(origin string, certificateID uuid.UUID) string {
	return strings.TrimRight(origin, "/") + "/verify-certificate/" + certificateID.String()
}

// BuildPreview interpolates the template's elements with the student
// data. Pure; the backend is not involved.
func BuildPreview(tpl entities.CertificateTemplate, data PreviewData, origin string, certificateID uuid.UUID) CertificatePreview {
	issued := data.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	replacer := strings.NewReplacer(
		"{{studentName}}", data.StudentName,
		"{{courseName}}", data.CourseName,
		"{{date}}", issued.Format("January 2, 2006"),
		"{{certificateId}}", certificateID.String(),
	)

	elements := make([]entities.TemplateElement, len(tpl.Elements))
	for i, el := range tpl.Elements {
		el.Text = replacer.Replace(el.Text)
		elements[i] = el
	}
	return CertificatePreview{
		Template:        tpl,
		Elements:        elements,
		VerificationURL: VerificationURL(origin, certificateID),
	}
}

// Preview is BuildPreview against this service's configured origin.
func (s *CertificateService) Preview(tpl entities.CertificateTemplate, data PreviewData, certificateID uuid.UUID) CertificatePreview {
	return BuildPreview(tpl, data, s.origin, certificateID)
}

// QRPNG encodes the certificate's verification URL as a PNG.
func (s *CertificateService) QRPNG(certificateID uuid.UUID, size int) ([]byte, error) {
	png, err := qrcode.Encode(VerificationURL(s.origin, certificateID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode verification qr: %w", err)
	}
	return png, nil
}

// Templates lists the available layouts. Read-mostly backend data.
func (s *CertificateService) Templates(ctx context.Context) ([]entities.CertificateTemplate, error) {
	var templates []entities.CertificateTemplate
	if err := s.api.Get(ctx, "/certificates/templates", &templates); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// Generate asks the backend to bind student, course and template into a
// persisted certificate with a unique verification code.
func (s *CertificateService) Generate(ctx context.Context, req dto.GenerateCertificateRequest) (*entities.Certificate, error) {
	var cert entities.Certificate
	if err := s.api.Post(ctx, "/certificates/generate", req, &cert); err != nil {
		return nil, fmt.Errorf("generate certificate: %w", err)
	}
	return &cert, nil
}

// Verify looks a certificate up by its verification code, the lookup
// behind a scanned QR code.
func (s *CertificateService) Verify(ctx context.Context, code string) (*entities.Certificate, error) {
	var cert entities.Certificate
	if err := s.api.Get(ctx, "/certificates/verify/"+code, &cert); err != nil {
		return nil, fmt.Errorf("verify certificate: %w", err)
	}
	return &cert, nil
}

// Download fetches the rendered certificate document.
func (s *CertificateService) Download(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := s.api.Download(ctx, "/certificates/"+id.String()+"/download")
	if err != nil {
		return nil, fmt.Errorf("download certificate: %w", err)
	}
	return data, nil
}
