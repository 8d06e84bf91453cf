package email

import (
	"context"

	"github.com/chowstack/chowstack/internal/notification/domain"
)

// NoOpSink is used when SMTP is unconfigured (dev, tests).
type NoOpSink struct{}

func (NoOpSink) Send(ctx context.Context, receipt domain.Receipt) error {
	return nil
}
