package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/configs"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
)

//go:embed templates/*.html
var templateFS embed.FS

// sender is the part of the SendGrid client we use.
type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService implements ports.EmailService over SendGrid. Without an API key
// it only logs what it would have sent.
type EmailService struct {
	config    *configs.EmailConfig
	logger    *logrus.Logger
	client    sender
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(config *configs.EmailConfig, logger *logrus.Logger) (*EmailService, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	s := &EmailService{config: config, logger: logger, templates: templates}
	if config.SendGridAPIKey != "" {
		s.client = sendgrid.NewSendClient(config.SendGridAPIKey)
	}
	return s, nil
}

// WelcomeEmailData holds data for the welcome template
type WelcomeEmailData struct {
	StoreName string
	UserName  string
	Email     string
	ShopURL   string
}

// SendWelcomeEmail greets a newly created user.
func (e *EmailService) SendWelcomeEmail(ctx context.Context, u *user.User) error {
	name := u.FullName
	if name == "" {
		name = u.Email
	}
	html, err := e.render("welcome.html", WelcomeEmailData{
		StoreName: e.config.StoreName,
		UserName:  name,
		Email:     u.Email,
		ShopURL:   e.config.BaseURL,
	})
	if err != nil {
		return err
	}
	return e.send(ctx, u.Email, name, fmt.Sprintf("Welcome to %s", e.config.StoreName), html)
}

func (e *EmailService) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *EmailService) send(ctx context.Context, to, toName, subject, htmlContent string) error {
	if e.client == nil {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("email disabled, not sending")
		}
		return nil
	}
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail(toName, to), "", htmlContent)

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{"to": to, "subject": subject}).WithError(err).Error("failed to send email")
		}
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected email with status %d: %s", response.StatusCode, response.Body)
	}
	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{"to": to, "subject": subject, "status_code": response.StatusCode}).Info("email sent")
	}
	return nil
}
