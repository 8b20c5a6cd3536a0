package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

const welcomeTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to Event Finder, {{.FullName}}!</h2>
  <p>Your account is ready. Browse what's happening around you, or publish
  your first event and start collecting attendees.</p>
  <p>— The Event Finder team</p>
</div>`

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
	tmpl     *template.Template
}

// NewEmailService builds the resend-backed mailer. With an empty API key it
// degrades to a no-op so local development works without credentials.
func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	svc := &EmailService{
		from:     from,
		fromName: fromName,
		logger:   logger,
		tmpl:     template.Must(template.New("welcome").Parse(welcomeTemplate)),
	}
	if apiKey != "" {
		svc.client = resend.NewClient(apiKey)
	}
	return svc
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	if s.client == nil {
		s.logger.Debug("email service disabled, skipping welcome email",
			zap.String("to", email))
		return nil
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, map[string]interface{}{"FullName": fullName}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{email},
		Subject: "Welcome to Event Finder",
		Html:    body.String(),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Error("failed to send welcome email",
			zap.String("to", email), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent", zap.String("to", email))
	return nil
}
