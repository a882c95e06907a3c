package email

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/safeonboard/internal/config"
)

// NewSender creates and returns an email sender based on the configuration.
func NewSender(cfg config.Provider, logger *slog.Logger) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case config.EmailLog:
		return NewLogSender(cfg.GetEmailSender(), logger), nil
	case config.EmailResend:
		if cfg.GetEmailAPIKey() == "" {
			return nil, fmt.Errorf("email provider is 'resend' but EMAIL_API_KEY is not set")
		}
		return NewResendSender(cfg.GetEmailAPIKey(), cfg.GetEmailSender(), ""), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.GetEmailProvider())
	}
}
