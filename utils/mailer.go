package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SMTPMailer sends mail through a plain SMTP relay configured from the
// environment. When an HTML body is supplied it takes precedence over the
// text body.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailerFromEnv() *SMTPMailer {
	return &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("SMTP_FROM"),
	}
}

func (m *SMTPMailer) Send(to, subject, text, html string) error {
	contentType := "text/plain"
	body := text
	if html != "" {
		contentType = "text/html"
		body = html
	}

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: " + contentType + "; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}
