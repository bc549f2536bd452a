package application

import (
	"context"
	"errors"
	"log"
	"time"

	billing "payment-notices/internal/billing/domain"
	"payment-notices/internal/observability/metrics"
)

// NoticeIssued is emitted after a notice has been priced and exported.
type NoticeIssued struct {
	AccountCode   int
	AccountNumber string
	Period        billing.Period
	TotalAmount   float64
	Files         []string
	OccurredAt    time.Time
}

// NoticeExporter writes a finished notice somewhere and returns the locations.
type NoticeExporter interface {
	Export(ctx context.Context, notice *billing.PaymentNotice) ([]string, error)
}

// NoticePublisher emits notice issued events.
type NoticePublisher interface {
	PublishNoticeIssued(ctx context.Context, event NoticeIssued) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IssuedNotice is a successfully generated notice.
type IssuedNotice struct {
	Notice *billing.PaymentNotice
	Lines  []LineResult
	Files  []string
}

// FailedNotice is an account skipped because of an error.
type FailedNotice struct {
	AccountCode int
	Err         error
}

// Report summarizes a batch run.
type Report struct {
	Period billing.Period
	Issued []IssuedNotice
	Failed []FailedNotice
}

// BatchService generates notices for a list of accounts, one at a time.
type BatchService struct {
	store     billing.RecordStore
	assembler *Assembler
	pipeline  *Pipeline
	exporter  NoticeExporter
	publisher NoticePublisher
	clock     Clock
	logger    *log.Logger
}

// BatchOption configures the batch service.
type BatchOption func(*BatchService)

// WithPublisher sets the notice issued publisher.
func WithPublisher(publisher NoticePublisher) BatchOption {
	return func(s *BatchService) {
		s.publisher = publisher
	}
}

// WithClock overrides the clock.
func WithClock(clock Clock) BatchOption {
	return func(s *BatchService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *log.Logger) BatchOption {
	return func(s *BatchService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewBatchService constructs the service.
func NewBatchService(store billing.RecordStore, pipeline *Pipeline, exporter NoticeExporter, opts ...BatchOption) (*BatchService, error) {
	if store == nil {
		return nil, errors.New("notice batch: nil record store")
	}
	if pipeline == nil {
		return nil, errors.New("notice batch: nil pipeline")
	}
	if exporter == nil {
		return nil, errors.New("notice batch: nil exporter")
	}
	assembler, err := NewAssembler(store)
	if err != nil {
		return nil, err
	}
	s := &BatchService{
		store:     store,
		assembler: assembler,
		pipeline:  pipeline,
		exporter:  exporter,
		clock:     SystemClock{},
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run generates a notice per account. An empty list means every account in
// the store. A failing account is logged and skipped; the error return is
// reserved for failures that stop the whole batch.
func (s *BatchService) Run(ctx context.Context, accountCodes []int, period billing.Period) (Report, error) {
	report := Report{Period: period}
	if err := period.Validate(); err != nil {
		return report, err
	}

	if len(accountCodes) == 0 {
		accounts, err := s.store.ListAccounts(ctx)
		if err != nil {
			return report, err
		}
		for _, account := range accounts {
			accountCodes = append(accountCodes, account.Code)
		}
	}

	for _, code := range accountCodes {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		issued, err := s.Generate(ctx, code, period)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			metrics.IncNoticeFailure(failureReason(err))
			s.logger.Printf("notice failed: account=%d period=%s err=%v", code, period, err)
			report.Failed = append(report.Failed, FailedNotice{AccountCode: code, Err: err})
			continue
		}
		report.Issued = append(report.Issued, issued)
	}
	return report, nil
}

// Generate assembles, prices and exports a single notice.
func (s *BatchService) Generate(ctx context.Context, accountCode int, period billing.Period) (IssuedNotice, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveNoticeGenerate(result, time.Since(start))
	}()

	notice, err := s.assembler.Assemble(ctx, accountCode, period)
	if err != nil {
		result = metrics.ResultError
		return IssuedNotice{}, err
	}
	notice, lines, err := s.pipeline.ProcessNotice(notice)
	if err != nil {
		result = metrics.ResultError
		return IssuedNotice{}, err
	}
	for _, line := range lines {
		metrics.IncChargeStage(line.Stage)
	}

	files, err := s.exporter.Export(ctx, notice)
	if err != nil {
		result = metrics.ResultError
		return IssuedNotice{}, err
	}

	if s.publisher != nil {
		event := NoticeIssued{
			AccountCode:   notice.Account.Code,
			AccountNumber: notice.Account.AccountNumber,
			Period:        period,
			TotalAmount:   notice.TotalAmount,
			Files:         files,
			OccurredAt:    s.clock.Now(),
		}
		if err := s.publisher.PublishNoticeIssued(ctx, event); err != nil {
			s.logger.Printf("notice publish failed: account=%d err=%v", accountCode, err)
		}
	}
	return IssuedNotice{Notice: notice, Lines: lines, Files: files}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, billing.ErrValidation):
		return "validation"
	case errors.Is(err, billing.ErrNotFound):
		return "not_found"
	case errors.Is(err, billing.ErrProcessing):
		return "processing"
	default:
		return "other"
	}
}
