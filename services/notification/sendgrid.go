package notification

import (
	"context"
	"fmt"

	"clearheadspace/models"
	"clearheadspace/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendgridNotifier delivers emails through the SendGrid API.
type SendgridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendgridNotifier creates a SendGrid-backed Notifier. Returns nil when no
// API key is configured; callers should fall back to the stub.
func NewSendgridNotifier(apiKey, fromEmail, fromName string) *SendgridNotifier {
	if apiKey == "" {
		return nil
	}
	return &SendgridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *SendgridNotifier) Send(ctx context.Context, payload models.EmailPayload) error {
	subject, html, err := Render(payload)
	if err != nil {
		return err
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(payload.ToName, payload.To)
	message := mail.NewSingleEmail(from, subject, to, html, html)

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	utils.GetLogger().Info("email sent",
		zap.String("to", payload.To),
		zap.String("kind", payload.Kind))
	return nil
}

// StubNotifier logs instead of sending. Used in development and when no
// SendGrid key is configured.
type StubNotifier struct{}

func (StubNotifier) Send(ctx context.Context, payload models.EmailPayload) error {
	utils.GetLogger().Info("stub notifier: would send email",
		zap.String("to", payload.To),
		zap.String("kind", payload.Kind))
	return nil
}
