package reminder

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/AlibekovAA/stride/internal/common/config"
	"github.com/AlibekovAA/stride/internal/common/constants"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/common/resilience"
)

// SendFunc has the signature of smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPNotifier struct {
	cfg      config.SMTPConfig
	location *time.Location
	send     SendFunc
	breaker  *resilience.CircuitBreaker
	log      *logger.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, location *time.Location, log *logger.Logger) *SMTPNotifier {
	if location == nil {
		location = time.UTC
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPNotifier{
		cfg:      cfg,
		location: location,
		send:     smtp.SendMail,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  constants.DefaultCircuitBreakerThreshold,
			Timeout:    constants.SMTPSendTimeout,
			ResetAfter: constants.DefaultCircuitBreakerReset,
			Name:       "smtp",
			Logger:     log,
		}),
		log: log,
	}
}

// WithSendFunc swaps the transport, mainly for tests.
func (n *SMTPNotifier) WithSendFunc(send SendFunc) *SMTPNotifier {
	n.send = send
	return n
}

func (n *SMTPNotifier) Name() string { return "smtp" }

func (n *SMTPNotifier) Notify(ctx context.Context, r UserReminders) error {
	body, err := RenderHTML(r, n.location)
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}
	msg := buildMessage(n.cfg.From, r.Email, Subject, body)

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	return n.breaker.Call(ctx, func(callCtx context.Context) error {
		done := make(chan error, 1)
		go func() {
			done <- n.send(addr, auth, n.cfg.From, []string{r.Email}, msg)
		}()

		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("send mail to %s: %w", r.Email, err)
			}
			return nil
		case <-callCtx.Done():
			return callCtx.Err()
		}
	})
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(htmlBody, "\n", "\r\n"))
	return []byte(b.String())
}
