package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"symptra-health/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendRequestStatusEmail(ctx context.Context, toEmail, recipientName, subject string, status string, reviewNotes *string) error
}

// Sender is the subset of the resend client used to deliver mail.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender Sender
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return NewServiceWithSender(client.Emails, cfg)
}

func NewServiceWithSender(sender Sender, cfg *config.Config) Service {
	return &service{
		sender: sender,
		config: cfg,
	}
}

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>{{.Title}}</h2>
  <p>Hello {{.Name}},</p>
  {{range .Lines}}<p>{{.}}</p>{{end}}
  {{if .Link}}<p><a href="{{.Link}}">Open Symptra</a></p>{{end}}
  <p style="color: #7b8794; font-size: 12px;">Symptra Health</p>
</body>
</html>`))

type message struct {
	Title string
	Name  string
	Lines []string
	Link  string
}

func (s *service) sendEmail(toEmail, subject string, data message) error {
	var body bytes.Buffer
	if err := layout.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Symptra Health <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.sender.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	data := message{
		Title: "Welcome to Symptra Health",
		Name:  name,
		Lines: []string{"Your account is ready. You can now book appointments and track your reports."},
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Welcome to Symptra Health!", data)
}

func (s *service) SendRequestStatusEmail(ctx context.Context, toEmail, recipientName, subject, status string, reviewNotes *string) error {
	lines := []string{fmt.Sprintf("Your %s has been %s.", subject, status)}
	if reviewNotes != nil && *reviewNotes != "" {
		lines = append(lines, "Reviewer notes: "+*reviewNotes)
	}

	data := message{
		Title: "Update on your " + subject,
		Name:  recipientName,
		Lines: lines,
		Link:  fmt.Sprintf("https://%s/dashboard", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Your %s was %s - Symptra Health", subject, status), data)
}
