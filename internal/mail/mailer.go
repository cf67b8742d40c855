package mail

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

// Mailer delivers password reset messages.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

// SMTPMailer sends mail through a plain SMTP server.
type SMTPMailer struct {
	Host string // SMTP server host
	Port string // SMTP server port
	User string // SMTP username
	Pass string // SMTP password
	From string // From address
}

// SendPasswordReset mails a reset token to the given address.
func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	subject := "Password reset"
	body := "Use this token to reset your password: " + token + "\r\n" +
		"The token expires in 15 minutes. Ignore this mail if you did not request a reset."
	msg := []byte("From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body + "\r\n")
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(addr, auth, m.From, []string{to}, msg)
}

// LogMailer is used when no SMTP server is configured: it logs the reset
// token instead of sending it. Development only.
type LogMailer struct{}

// SendPasswordReset logs the token instead of delivering it.
func (m *LogMailer) SendPasswordReset(to, token string) error {
	logrus.WithFields(logrus.Fields{
		"to":    to,
		"token": token,
	}).Info("Password reset mail (SMTP not configured)")
	return nil
}
