package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RequestDecisionEmailData holds data for the approval/rejection
// notification sent to the requester.
type RequestDecisionEmailData struct {
	Email        string
	FirstName    string
	RequestTitle string
	AdminComment string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRequestApproved(ctx context.Context, data *RequestDecisionEmailData) error
	SendRequestRejected(ctx context.Context, data *RequestDecisionEmailData) error
}
