package interfaces

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	billing "payment-notices/internal/billing/domain"
	"payment-notices/internal/calendar"
)

const pdfUTF8Family = "NoticeUTF8"

// PDFRenderer renders notices as a minimal PDF table.
type PDFRenderer struct {
	formatter *calendar.Formatter
	fontPath  string
}

// PDFOption configures the PDF renderer.
type PDFOption func(*PDFRenderer)

// WithUTF8Font embeds a TrueType font so Cyrillic names render.
// Without it the core Arial font is used and non Latin-1 text degrades.
func WithUTF8Font(path string) PDFOption {
	return func(r *PDFRenderer) {
		r.fontPath = path
	}
}

// NewPDFRenderer constructs the renderer.
func NewPDFRenderer(formatter *calendar.Formatter, opts ...PDFOption) *PDFRenderer {
	if formatter == nil {
		formatter = calendar.NewFormatter(calendar.LocaleRU)
	}
	r := &PDFRenderer{formatter: formatter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PDFRenderer) Format() string { return FormatPDF }
func (r *PDFRenderer) Extension() string { return ".pdf" }

// Render builds the PDF in memory.
func (r *PDFRenderer) Render(notice *billing.PaymentNotice) ([]byte, error) {
	if notice == nil {
		return nil, errors.New("pdf renderer: nil notice")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.fontPath != "" {
		pdf.AddUTF8Font(pdfUTF8Family, "", r.fontPath)
		pdf.AddUTF8Font(pdfUTF8Family, "B", r.fontPath)
		family = pdfUTF8Family
		tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf renderer: font: %w", err)
	}

	pdf.SetFont(family, "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 8, tr("Payment Notice"))
	pdf.Ln(10)

	pdf.SetFont(family, "", 10)
	info := []string{
		"Account: " + notice.Account.AccountNumber,
		"Name: " + notice.Account.FullName,
		"Address: " + notice.Address(),
		"Period: " + r.formatter.PeriodLabel(notice.PeriodMonth, notice.PeriodYear),
		"Generated: " + r.formatter.Today(),
	}
	for _, line := range info {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(12, 6, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(78, 6, tr("Service"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Quantity"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Tariff"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Amount"), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	for i, line := range notice.Lines {
		pdf.CellFormat(12, 6, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(78, 6, tr(line.Service.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, formatQuantity(line.Charge.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, FormatAmount(line.Service.Tariff), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, FormatAmount(line.Cost()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont(family, "B", 11)
	pdf.SetFillColor(255, 255, 0)
	pdf.CellFormat(150, 7, tr("Total due:"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, FormatAmount(notice.TotalAmount), "1", 0, "R", true, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatAmount rounds a monetary amount to two decimals for display.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatQuantity(v float64) string {
	return decimal.NewFromFloat(v).String()
}
