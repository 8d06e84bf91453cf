package notification

import (
	"github.com/chowstack/chowstack/internal/config"
	"github.com/chowstack/chowstack/internal/notification/domain"
	"github.com/chowstack/chowstack/internal/notification/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notification",
	fx.Provide(NewSinkFromConfig),
)

func NewSinkFromConfig(cfg config.Config, log *zap.Logger) (domain.Sink, error) {
	if cfg.SMTPHost == "" {
		log.Info("smtp not configured, receipts disabled")
		return email.NoOpSink{}, nil
	}
	return email.NewSMTP(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}
