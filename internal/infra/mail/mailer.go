// Package mail implements the outbound transactional mail sender on top
// of an SMTP server.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	gomail "github.com/wneessen/go-mail"

	"workbuddy/config"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/errors"
)

type smtpMailer struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPMailer builds a Mailer that delivers through the configured
// SMTP server.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.SMTP == nil {
		return nil, errors.New("smtp configuration is required")
	}

	client, err := gomail.NewClient(cfg.SMTP.Host,
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTP.Username),
		gomail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create smtp client")
	}

	return &smtpMailer{
		client: client,
		from:   cfg.SMTP.From,
		logger: logger,
	}, nil
}

func (m *smtpMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	subject := "Verify your account"
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\n\nIt expires in 15 minutes.\n", name, code)

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) SendRecoveryCode(ctx context.Context, to, code string) error {
	subject := "Password recovery code"
	body := fmt.Sprintf("Your password recovery code is: %s\n\nIt expires in 15 minutes. If you did not request this, ignore this message.\n", code)

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) SendPaymentCompleted(ctx context.Context, to, name, orderID string, amount decimal.Decimal) error {
	subject := "Payment received"
	body := fmt.Sprintf("Hello %s,\n\nWe received your payment of $%s for order %s. Your order is now being prepared.\n", name, amount.StringFixed(2), orderID)

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) SendOrderStatusUpdate(ctx context.Context, to, name, orderID, status string) error {
	subject := "Order status update"
	body := fmt.Sprintf("Hello %s,\n\nYour order %s is now %s.\n", name, orderID, status)

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Wrap(err, "set mail sender")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "set mail recipient")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.ErrorContext(ctx, "mail delivery failed",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.Any("error", err))

		return errors.Wrap(err, "send mail")
	}

	return nil
}
