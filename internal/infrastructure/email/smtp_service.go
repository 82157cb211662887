package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"inkwell-backend/pkg/logger"
)

type WelcomeEmailData struct {
	Email            string
	UnsubscribeToken string
}

// DigestItem is one writing in the weekly digest.
type DigestItem struct {
	Title   string
	PenName string
	Excerpt string
}

type DigestEmailData struct {
	Email            string
	UnsubscribeToken string
	Items            []DigestItem
}

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
	SendDigestEmail(ctx context.Context, data DigestEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	subject := "Welcome to the Inkwell newsletter"
	body := fmt.Sprintf(`Hello,

You are now subscribed to the Inkwell weekly digest. Every week we
send a roundup of new public writings.

If this was not you, unsubscribe with this token: %s`, data.UnsubscribeToken)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendDigestEmail(ctx context.Context, data DigestEmailData) error {
	subject := "Your weekly Inkwell digest"

	var b strings.Builder
	b.WriteString("Hello,\n\nNew writings this week:\n\n")
	for _, item := range data.Items {
		fmt.Fprintf(&b, "- %s by %s\n  %s\n\n", item.Title, item.PenName, item.Excerpt)
	}
	fmt.Fprintf(&b, "To unsubscribe, use this token: %s\n", data.UnsubscribeToken)

	return s.send(data.Email, subject, b.String())
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Warn("failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
