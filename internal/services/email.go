package services

import (
	"context"
	"fmt"
	"log"

	"eventhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRequestApproved sends the approval notification using the "request_approved" template.
func (s *emailService) SendRequestApproved(ctx context.Context, data *domain.RequestDecisionEmailData) error {
	return s.send("request_approved", data)
}

// SendRequestRejected sends the rejection notification using the "request_rejected" template.
func (s *emailService) SendRequestRejected(ctx context.Context, data *domain.RequestDecisionEmailData) error {
	return s.send("request_rejected", data)
}

func (s *emailService) send(templateName string, data *domain.RequestDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("decision email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	log.Printf("[EMAIL] Decision email %s sent to %s", templateName, data.Email)
	return nil
}
