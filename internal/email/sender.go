package email

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Sender interface {
	Send(to, subject, body string) error
}

type StdoutSender struct{}

func (StdoutSender) Send(to, subject, body string) error {
	log.Printf("EMAIL to=%s subject=%s\n%s", to, subject, body)
	return nil
}

// SMTPSender delivers mail through an unauthenticated relay (MailHog in
// development, a local postfix in production).
type SMTPSender struct {
	Addr string
	From string
}

func NewSMTPSender(addr, from string) *SMTPSender {
	if addr == "" {
		addr = "localhost:1025"
	}
	if from == "" {
		from = "no-reply@sportspal.local"
	}
	return &SMTPSender{Addr: addr, From: from}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("recipient required")
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.Addr, nil, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
