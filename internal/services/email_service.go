package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, firstName string) error
	SendLockoutEmail(email, firstName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Stockroom!")

	body := fmt.Sprintf(`
		<h2>Welcome to Stockroom, %s!</h2>
		<p>Thank you for registering with us. Your account has been successfully created.</p>
		<p>Best regards,<br>The Stockroom Team</p>
	`, firstName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendLockoutEmail(email, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your account has been temporarily locked")

	// без деталей: ни срока, ни числа попыток
	body := fmt.Sprintf(`
		<h3>Sign-in temporarily disabled</h3>
		<p>Hi %s,</p>
		<p>We noticed several unsuccessful sign-in attempts on your account, so sign-in
		has been temporarily disabled. Please try again later.</p>
		<p>If this wasn't you, consider changing your password once you regain access.</p>
	`, firstName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lockout email: %w", err)
	}
	return nil
}
