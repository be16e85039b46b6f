package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer delivers the registration verification code.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to string, code string) error
}

// SMTPMailer sends the code over authenticated SMTP with STARTTLS
// negotiated by the server (port 587 convention).
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (mailer *SMTPMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := buildVerificationMessage(mailer.From, to, code)
	addr := fmt.Sprintf("%s:%d", mailer.Host, mailer.Port)
	auth := smtp.PlainAuth("", mailer.Username, mailer.Password, mailer.Host)

	if err := smtp.SendMail(addr, auth, mailer.From, []string{to}, message); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

func buildVerificationMessage(from string, to string, code string) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: Dein Lifetracker Code\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString("<h1>Willkommen beim Lifetracker!</h1>")
	builder.WriteString("<p>Dein Verifizierungscode lautet:</p>")
	builder.WriteString("<h2>" + code + "</h2>")
	builder.WriteString("<p>Bitte gib diesen Code in der App ein.</p>")
	return []byte(builder.String())
}

// LogMailer stands in when SMTP is not configured; the code only appears
// in the server log.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(_ context.Context, to string, code string) error {
	log.Printf("verification code for %s: %s", to, code)
	return nil
}
