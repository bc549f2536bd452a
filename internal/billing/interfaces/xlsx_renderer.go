package interfaces

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	billing "payment-notices/internal/billing/domain"
	"payment-notices/internal/calendar"
)

// NoticeSheetName is the worksheet holding the notice.
const NoticeSheetName = "Извещение на оплату"

// Worksheet layout.
const (
	xlsxTitleRow  = 1
	xlsxInfoRow   = 3
	xlsxHeaderRow = 9
	xlsxFirstLine = 10
)

// XLSXTotalRow returns the row of the grand total for a notice with n lines.
func XLSXTotalRow(lines int) int { return xlsxFirstLine + lines }

// XLSXRenderer renders notices as styled spreadsheets.
type XLSXRenderer struct {
	formatter *calendar.Formatter
}

// NewXLSXRenderer constructs the renderer.
func NewXLSXRenderer(formatter *calendar.Formatter) *XLSXRenderer {
	if formatter == nil {
		formatter = calendar.NewFormatter(calendar.LocaleRU)
	}
	return &XLSXRenderer{formatter: formatter}
}

func (r *XLSXRenderer) Format() string { return FormatXLSX }
func (r *XLSXRenderer) Extension() string { return ".xlsx" }

type xlsxStyles struct {
	header    int
	label     int
	cell      int
	centered  int
	number    int
	totalText int
	totalSum  int
}

// Render builds the workbook in memory. Line amounts are tariff * quantity;
// the total row shows notice.TotalAmount, which may include discounts.
func (r *XLSXRenderer) Render(notice *billing.PaymentNotice) ([]byte, error) {
	if notice == nil {
		return nil, errors.New("xlsx renderer: nil notice")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := NoticeSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(sheet, "A1", "E1"); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(sheet, "A1", "ИЗВЕЩЕНИЕ НА ОПЛАТУ")
	_ = f.SetCellStyle(sheet, "A1", "E1", styles.header)
	_ = f.SetRowHeight(sheet, xlsxTitleRow, 24)

	info := []struct {
		label string
		value string
	}{
		{"Лицевой счет:", notice.Account.AccountNumber},
		{"ФИО:", notice.Account.FullName},
		{"Адрес:", notice.Address()},
		{"Период:", r.formatter.PeriodLabel(notice.PeriodMonth, notice.PeriodYear)},
		{"Дата формирования:", r.formatter.Today()},
	}
	row := xlsxInfoRow
	for _, item := range info {
		_ = f.SetCellValue(sheet, cell("A", row), item.label)
		_ = f.SetCellValue(sheet, cell("B", row), item.value)
		_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), styles.label)
		row++
	}

	headers := []string{"№", "Услуга", "Количество", "Тариф", "Сумма"}
	for i, header := range headers {
		name, err := excelize.CoordinatesToCellName(i+1, xlsxHeaderRow)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, name, header)
	}
	_ = f.SetCellStyle(sheet, cell("A", xlsxHeaderRow), cell("E", xlsxHeaderRow), styles.header)

	row = xlsxFirstLine
	for i, line := range notice.Lines {
		_ = f.SetCellValue(sheet, cell("A", row), i+1)
		_ = f.SetCellValue(sheet, cell("B", row), line.Service.Name)
		_ = f.SetCellValue(sheet, cell("C", row), line.Charge.Quantity)
		_ = f.SetCellValue(sheet, cell("D", row), line.Service.Tariff)
		_ = f.SetCellValue(sheet, cell("E", row), line.Cost())
		_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), styles.centered)
		_ = f.SetCellStyle(sheet, cell("B", row), cell("B", row), styles.cell)
		_ = f.SetCellStyle(sheet, cell("C", row), cell("E", row), styles.number)
		row++
	}

	if err := f.MergeCell(sheet, cell("A", row), cell("D", row)); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(sheet, cell("A", row), "ИТОГО К ОПЛАТЕ:")
	_ = f.SetCellStyle(sheet, cell("A", row), cell("D", row), styles.totalText)
	_ = f.SetCellValue(sheet, cell("E", row), notice.TotalAmount)
	_ = f.SetCellStyle(sheet, cell("E", row), cell("E", row), styles.totalSum)

	widths := map[string]float64{"A": 8, "B": 40, "C": 15, "D": 15, "E": 15}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type styleDef struct {
	dst   *int
	style *excelize.Style
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s xlsxStyles
	defs := []styleDef{
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&s.cell, &excelize.Style{Border: border}},
		{&s.centered, &excelize.Style{
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.number, &excelize.Style{
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "right"},
			NumFmt:    2,
		}},
		{&s.totalText, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:    border,
		}},
		{&s.totalSum, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
			Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			Border:    border,
			NumFmt:    2,
		}},
	}
	for _, def := range defs {
		id, err := f.NewStyle(def.style)
		if err != nil {
			return xlsxStyles{}, fmt.Errorf("xlsx renderer: style: %w", err)
		}
		*def.dst = id
	}
	return s, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
