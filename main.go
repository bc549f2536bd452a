package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-notices/internal/billing/application"
	billing "payment-notices/internal/billing/domain"
	"payment-notices/internal/billing/infrastructure/memory"
	"payment-notices/internal/billing/interfaces"
	"payment-notices/internal/calendar"
	"payment-notices/internal/observability/metrics"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := application.LoadConfig()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	metrics.Init(logger)

	store, err := loadStore(cfg.DatasetPath)
	if err != nil {
		logger.Fatalf("record store error: %v", err)
	}

	pipeline, err := application.NewDefaultPipeline(cfg.Pipeline)
	if err != nil {
		logger.Fatalf("charge pipeline error: %v", err)
	}

	formatter := calendar.NewFormatter(cfg.Locale, calendar.WithLayout(cfg.DateLayout))
	var pdfOpts []interfaces.PDFOption
	if cfg.PDFFontPath != "" {
		pdfOpts = append(pdfOpts, interfaces.WithUTF8Font(cfg.PDFFontPath))
	}
	renderers, err := interfaces.RenderersFor(cfg.Formats,
		interfaces.NewXLSXRenderer(formatter),
		interfaces.NewPDFRenderer(formatter, pdfOpts...),
	)
	if err != nil {
		logger.Fatalf("renderer error: %v", err)
	}
	var exporterOpts []interfaces.ExporterOption
	if cfg.FilePrefix != "" {
		exporterOpts = append(exporterOpts, interfaces.WithFilePrefix(cfg.FilePrefix))
	}
	exporter, err := interfaces.NewFileExporter(cfg.OutputDir, renderers, exporterOpts...)
	if err != nil {
		logger.Fatalf("exporter error: %v", err)
	}

	batch, err := application.NewBatchService(store, pipeline, exporter,
		application.WithPublisher(interfaces.NewLoggingPublisher(logger)),
		application.WithLogger(logger),
	)
	if err != nil {
		logger.Fatalf("batch service error: %v", err)
	}

	period := billing.PeriodOf(time.Now())
	if cfg.Period != "" {
		period, err = billing.ParsePeriod(cfg.Period)
		if err != nil {
			logger.Fatalf("period error: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("notice batch started: period=%s stages=%v output=%s formats=%v",
		period, pipeline.Stages(), cfg.OutputDir, cfg.Formats)
	report, err := batch.Run(ctx, cfg.Accounts, period)
	if err != nil {
		logger.Printf("notice batch aborted: %v", err)
	}
	for _, issued := range report.Issued {
		logger.Printf("✓ %s: %s -> %v", issued.Notice.Account.AccountNumber,
			interfaces.FormatAmount(issued.Notice.TotalAmount), issued.Files)
	}
	for _, failed := range report.Failed {
		logger.Printf("✗ account %d: %v", failed.AccountCode, failed.Err)
	}
	logger.Printf("notice batch finished: issued=%d failed=%d", len(report.Issued), len(report.Failed))

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Printf("metrics textfile error: %v", err)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func loadStore(datasetPath string) (*memory.RecordStore, error) {
	if datasetPath == "" {
		return memory.NewDemoRecordStore()
	}
	ds, err := memory.LoadDatasetFile(datasetPath)
	if err != nil {
		return nil, err
	}
	store := memory.NewRecordStore()
	if err := store.Load(ds); err != nil {
		return nil, err
	}
	return store, nil
}
