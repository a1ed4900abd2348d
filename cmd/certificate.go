package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/dto"
	"course-agent/server"
	"course-agent/service"
)

func certificate(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certificate",
		Short: "generate and fetch completion certificates",
	}
	cmd.AddCommand(
		certificateTemplates(cfg),
		certificateGenerate(cfg),
		certificateVerify(cfg),
		certificateQR(cfg),
		certificateDownload(cfg),
	)
	return cmd
}

func newCertificateService(cfg *config.Config) (*service.CertificateService, error) {
	client, err := newAPIClient(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewCertificateService(client, cfg.API.Origin), nil
}

func certificateTemplates(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "list certificate templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newCertificateService(cfg)
			if err != nil {
				return err
			}
			templates, err := svc.Templates(ctx)
			if err != nil {
				return err
			}
			for _, t := range templates {
				fmt.Printf("%-20s %-30s %dx%d, %d elements\n", t.ID, t.Name, t.Width, t.Height, len(t.Elements))
			}
			return nil
		},
	}
}

func certificateGenerate(cfg *config.Config) *cobra.Command {
	var studentID, studentName, courseID, courseName, templateID string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a certificate for a student/course pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newCertificateService(cfg)
			if err != nil {
				return err
			}
			sid, err := uuid.Parse(studentID)
			if err != nil {
				return fmt.Errorf("invalid student id: %w", err)
			}
			cid, err := uuid.Parse(courseID)
			if err != nil {
				return fmt.Errorf("invalid course id: %w", err)
			}
			cert, err := svc.Generate(ctx, dto.GenerateCertificateRequest{
				StudentID:   sid,
				StudentName: studentName,
				CourseID:    cid,
				CourseName:  courseName,
				TemplateID:  templateID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("certificate %s issued, verification code %s\n", cert.ID, cert.VerificationCode)
			fmt.Println(service.VerificationURL(cfg.API.Origin, cert.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&studentID, "student", "", "student id")
	cmd.Flags().StringVar(&studentName, "student-name", "", "student display name")
	cmd.Flags().StringVar(&courseID, "course", "", "course id")
	cmd.Flags().StringVar(&courseName, "course-name", "", "course display name")
	cmd.Flags().StringVar(&templateID, "template", "", "template id")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func certificateVerify(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [verification-code]",
		Short: "look a certificate up by its verification code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newCertificateService(cfg)
			if err != nil {
				return err
			}
			cert, err := svc.Verify(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s completed %s on %s (certificate %s)\n",
				cert.StudentName, cert.CourseName, cert.IssuedAt.Format("2006-01-02"), cert.ID)
			return nil
		},
	}
}

func certificateQR(cfg *config.Config) *cobra.Command {
	var out string
	var size int
	cmd := &cobra.Command{
		Use:   "qr [certificate-id]",
		Short: "write the verification QR code as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newCertificateService(cfg)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid certificate id: %w", err)
			}
			png, err := svc.QRPNG(id, size)
			if err != nil {
				return err
			}
			return os.WriteFile(out, png, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "certificate-qr.png", "output file")
	cmd.Flags().IntVar(&size, "size", 256, "image size in pixels")
	return cmd
}

func certificateDownload(cfg *config.Config) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "download [certificate-id]",
		Short: "download the rendered certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			svc, err := newCertificateService(cfg)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid certificate id: %w", err)
			}
			data, err := svc.Download(ctx, id)
			if err != nil {
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "certificate.pdf", "output file")
	return cmd
}
