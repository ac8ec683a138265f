// Package email bildirim e-postalarını gönderir. Gerçek gönderim Resend API
// ile yapılır; API anahtarı yoksa NopSender kullanılır.
package email

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Sender servis katmanının bağlı olduğu e-posta arayüzü
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type resendSender struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

// NewResendSender Resend istemcisi ile Sender oluşturur
func NewResendSender(apiKey, from string, logger *zap.Logger) Sender {
	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// Send düz metin gövdeyi basit bir HTML şablonuna yerleştirip gönderir
func (s *resendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    renderHTML(subject, body),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("e-posta gönderilemedi: %w", err)
	}

	s.logger.Debug("e-posta gönderildi", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func renderHTML(subject, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family:Arial,Helvetica,sans-serif;background:#f4f6f8;padding:24px;">
  <div style="max-width:520px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;">
    <h2 style="color:#1f2937;margin-top:0;">%s</h2>
    <p style="color:#4b5563;line-height:1.6;">%s</p>
    <p style="color:#9ca3af;font-size:12px;margin-top:32px;">Bu e-posta İK Portalı tarafından otomatik gönderilmiştir.</p>
  </div>
</body>
</html>`, html.EscapeString(subject), html.EscapeString(body))
}

// NopSender e-posta kapalıyken kullanılır
type NopSender struct{}

// Send hiçbir şey yapmaz
func (NopSender) Send(context.Context, string, string, string) error { return nil }
