package interfaces

import (
	"context"
	"errors"
	"log"
	"strings"

	"payment-notices/internal/billing/application"
)

// LoggingPublisher logs issued notices.
type LoggingPublisher struct {
	logger *log.Logger
}

// NewLoggingPublisher constructs a logging publisher.
func NewLoggingPublisher(logger *log.Logger) *LoggingPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingPublisher{logger: logger}
}

// PublishNoticeIssued logs the event.
func (p *LoggingPublisher) PublishNoticeIssued(ctx context.Context, event application.NoticeIssued) error {
	_ = ctx
	if p == nil {
		return errors.New("notice publisher: nil publisher")
	}
	p.logger.Printf("notice issued: account=%s period=%s total=%s files=%s",
		event.AccountNumber, event.Period, FormatAmount(event.TotalAmount), strings.Join(event.Files, ","))
	return nil
}
