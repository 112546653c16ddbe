// Package mailer delivers notification emails over SMTP.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To       []string
	Cc       []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}

// Sender delivers one message. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewSMTPSender(config SMTPConfig, log *zap.Logger) *SMTPSender {
	from := config.From
	if from == "" {
		from = config.User
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   from,
		log:    log.With(zap.String("component", "smtp_sender")),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := s.build(msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("Failed to send email",
			zap.Error(err),
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return fmt.Errorf("send email %q: %w", msg.Subject, err)
	}

	s.log.Info("Email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (s *SMTPSender) build(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID(s.from))
	for name, value := range msg.Headers {
		m.SetHeader(name, value)
	}

	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	return m
}

func messageID(from string) string {
	domain := "storefront.local"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = strings.Trim(from[i+1:], "> ")
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// LogSender writes messages to the log instead of sending them. Used when SMTP is not configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.With(zap.String("component", "log_sender"))}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("Email not sent, SMTP disabled",
		zap.Strings("to", msg.To),
		zap.Strings("cc", msg.Cc),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextBody),
	)
	return nil
}
