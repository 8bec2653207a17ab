// Package mailer forwards contact form submissions by email.
package mailer

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/Zachkp/folio/internal/domain"
)

var ErrNotConfigured = errors.New("SMTP credentials not configured")

type Config struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg  Config
	send sendFunc
}

func New(cfg Config) *Mailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether there is an account to send from and an
// address to send to.
func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Pass != "" && m.cfg.To != ""
}

// Send mails msg to the configured address, with Reply-To set to the sender.
func (m *Mailer) Send(msg domain.Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, compose(m.cfg, msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}

	log.Printf("Email sent for message %s", msg.ID)
	return nil
}

func compose(cfg Config, msg domain.Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(msg.Subject))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, oneLine(msg.Subject), msg.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + oneLine(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// oneLine keeps submitted values from adding header lines.
func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
