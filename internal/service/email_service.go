package service

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v3"

	"github.com/osa911/portfolio/internal/models"
)

// emailSender is the part of the Resend client the notifier uses.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailService mails contact submissions through Resend
type EmailService struct {
	sender emailSender
	from   string
	to     string
}

// NewEmailService creates a Resend-backed notifier. It returns nil when any of
// the API key, sender or recipient is missing.
func NewEmailService(apiKey, from, to string) *EmailService {
	if apiKey == "" || from == "" || to == "" {
		return nil
	}
	return &EmailService{
		sender: resend.NewClient(apiKey).Emails,
		from:   from,
		to:     to,
	}
}

func (s *EmailService) Name() string {
	return "email"
}

// Notify sends the submission with Reply-To set to the visitor's address.
func (s *EmailService) Notify(ctx context.Context, contact *models.Contact) error {
	if s == nil || s.sender == nil {
		return fmt.Errorf("resend: %w", ErrNotConfigured)
	}

	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: fmt.Sprintf("New contact from %s", contact.Name),
		Html:    formatEmailHTML(contact),
		Text:    formatEmailText(contact),
		ReplyTo: contact.Email,
	}

	if _, err := s.sender.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func formatEmailText(contact *models.Contact) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s",
		contact.Name, contact.Email, contact.PhoneOrDefault(), contact.Description)
}

func formatEmailHTML(contact *models.Contact) string {
	return fmt.Sprintf(
		"<h2>New Contact Form Submission</h2>"+
			"<p><b>Name:</b> %s<br><b>Email:</b> %s<br><b>Phone:</b> %s</p>"+
			"<p>%s</p>",
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.PhoneOrDefault()),
		html.EscapeString(contact.Description),
	)
}
