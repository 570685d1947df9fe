package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendApplicationReceived(toEmail, toName string) error
	SendTicketAcknowledgement(toEmail, toName, ticketNumber, subject string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for links back to the portal
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

func (s *EmailServiceImpl) configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendApplicationReceived confirms a submitted admission application
func (s *EmailServiceImpl) SendApplicationReceived(toEmail, toName string) error {
	if toEmail == "" {
		return nil
	}
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("toName", toName).
			Msg("SMTP credentials not configured - application email not sent.")
		return nil
	}
	subject := "Application Received - Student Portal"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application submitted</h2>
				<p>Hello %s,</p>
				<p>We have received your admission application. You will receive an email notification once your application is reviewed.</p>
				<p>You can sign in to the portal at <a href="%s/login">%s</a> once your credentials are issued.</p>
				<p>Best regards,<br>Admissions Office</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), s.config.BaseURL, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendTicketAcknowledgement confirms a support query with its ticket number
func (s *EmailServiceImpl) SendTicketAcknowledgement(toEmail, toName, ticketNumber, subject string) error {
	if toEmail == "" {
		return nil
	}
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("ticket", ticketNumber).
			Msg("SMTP credentials not configured - ticket email not sent.")
		return nil
	}
	mailSubject := fmt.Sprintf("[%s] We received your query", ticketNumber)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Support ticket %s</h2>
				<p>Hello %s,</p>
				<p>Your query <strong>%s</strong> has been logged. Our support team will get back to you shortly.</p>
				<p>You can follow it under Previous Tickets at <a href="%s/support?tab=previous-tickets">the support page</a>.</p>
				<p>Best regards,<br>Student Support</p>
			</div>
		</body>
		</html>
	`, ticketNumber, html.EscapeString(toName), html.EscapeString(subject), s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, mailSubject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := [][2]string{
		{"From", fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)},
		{"To", toEmail},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var message strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&message, "%s: %s\r\n", h[0], h[1])
	}
	message.WriteString("\r\n" + htmlBody)

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		err := smtp.SendMail(
			serverAddress,
			auth,
			s.config.FromEmail,
			[]string{toEmail},
			[]byte(message.String()),
		)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message.String())); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
