package interfaces

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	billing "payment-notices/internal/billing/domain"
	"payment-notices/internal/observability/metrics"
)

// Supported export formats.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// DefaultFilePrefix precedes the account number in exported file names.
const DefaultFilePrefix = "извещение_ЛС_"

// Renderer turns a finished notice into a document.
type Renderer interface {
	Format() string
	Extension() string
	Render(notice *billing.PaymentNotice) ([]byte, error)
}

// FileExporter renders notices and writes them to a directory.
type FileExporter struct {
	dir       string
	prefix    string
	renderers []Renderer
}

// ExporterOption configures a FileExporter.
type ExporterOption func(*FileExporter)

// WithFilePrefix overrides DefaultFilePrefix.
func WithFilePrefix(prefix string) ExporterOption {
	return func(e *FileExporter) {
		e.prefix = prefix
	}
}

// NewFileExporter constructs an exporter writing every renderer's output.
func NewFileExporter(dir string, renderers []Renderer, opts ...ExporterOption) (*FileExporter, error) {
	if dir == "" {
		dir = "."
	}
	if len(renderers) == 0 {
		return nil, errors.New("notice exporter: no renderers")
	}
	for i, r := range renderers {
		if r == nil {
			return nil, fmt.Errorf("notice exporter: nil renderer at %d", i)
		}
	}
	e := &FileExporter{dir: dir, prefix: DefaultFilePrefix, renderers: renderers}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export renders every format before writing anything, so a render failure
// leaves no files behind for the notice.
func (e *FileExporter) Export(ctx context.Context, notice *billing.PaymentNotice) ([]string, error) {
	if notice == nil {
		return nil, errors.New("notice exporter: nil notice")
	}

	docs := make([][]byte, len(e.renderers))
	for i, r := range e.renderers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		data, err := r.Render(notice)
		if err != nil {
			metrics.ObserveNoticeExport(r.Format(), metrics.ResultError, time.Since(start))
			return nil, fmt.Errorf("render %s: %w", r.Format(), err)
		}
		metrics.ObserveNoticeExport(r.Format(), metrics.ResultSuccess, time.Since(start))
		docs[i] = data
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(docs))
	for i, r := range e.renderers {
		path := filepath.Join(e.dir, e.FileName(notice, r.Extension()))
		if err := writeFileAtomic(path, docs[i]); err != nil {
			removeAll(paths)
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileName returns the output file name for a notice.
func (e *FileExporter) FileName(notice *billing.PaymentNotice, ext string) string {
	number := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, notice.Account.AccountNumber)
	return e.prefix + number + ext
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".notice-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// RenderersFor builds renderers for the requested formats.
func RenderersFor(formats []string, xlsx *XLSXRenderer, pdf *PDFRenderer) ([]Renderer, error) {
	var result []Renderer
	seen := make(map[string]bool)
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" || seen[format] {
			continue
		}
		seen[format] = true
		switch format {
		case FormatXLSX:
			result = append(result, xlsx)
		case FormatPDF:
			result = append(result, pdf)
		default:
			return nil, fmt.Errorf("notice exporter: unsupported format %q", format)
		}
	}
	if len(result) == 0 {
		return nil, errors.New("notice exporter: no formats")
	}
	return result, nil
}
