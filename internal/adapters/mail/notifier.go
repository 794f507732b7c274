package mail

import (
	"context"
	"fmt"

	"shopfx/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// AdminNotifier mails operational summaries to the configured shop
// administrators. With no admins configured it is a no-op.
type AdminNotifier struct {
	cfg config.Mail
}

func (n *AdminNotifier) NotifyAdmins(ctx context.Context, subject, body string) error {
	if len(n.cfg.Admins) == 0 {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", n.cfg.From, err)
	}
	if err := msg.To(n.cfg.Admins...); err != nil {
		return fmt.Errorf("invalid admin address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(n.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.cfg.Username),
			gomail.WithPassword(n.cfg.Password),
		)
	}

	client, err := gomail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send admin mail: %w", err)
	}
	return nil
}

func NewAdminNotifier(cfg config.Mail) *AdminNotifier {
	return &AdminNotifier{cfg: cfg}
}
