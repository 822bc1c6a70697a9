package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/shubhswain45/connectify-server-app/internal/config"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends email over SMTP using go-mail.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	sender   string
}

// NewSMTPMailer creates a mailer from the application config.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.SMTPSender == "" {
		return nil, fmt.Errorf("SMTP sender address is required")
	}

	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		sender:   cfg.SMTPSender,
	}, nil
}

// Send delivers a single HTML email.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	// Implicit TLS (SSL) for port 465, STARTTLS for others
	if m.port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if m.username != "" && m.password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// SendVerificationEmail sends the 6-digit verification code.
func SendVerificationEmail(ctx context.Context, m Mailer, to, code string) error {
	body := strings.ReplaceAll(verificationEmailTemplate, "{verificationCode}", code)
	return m.Send(ctx, to, "Verify Your Email", body)
}

// SendWelcomeEmail greets a freshly verified user.
func SendWelcomeEmail(ctx context.Context, m Mailer, to, username string) error {
	body := strings.ReplaceAll(welcomeEmailTemplate, "{username}", username)
	return m.Send(ctx, to, "Welcome!", body)
}

// SendPasswordResetEmail sends the reset link.
func SendPasswordResetEmail(ctx context.Context, m Mailer, to, resetURL string) error {
	body := strings.ReplaceAll(passwordResetRequestTemplate, "{resetURL}", resetURL)
	return m.Send(ctx, to, "Password Reset Request", body)
}

// SendResetSuccessEmail confirms a completed password reset.
func SendResetSuccessEmail(ctx context.Context, m Mailer, to string) error {
	return m.Send(ctx, to, "Password Reset Successful", passwordResetSuccessTemplate)
}
