package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var excelContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel": true,
}

// excelProcessor flattens workbook sheets into tab-separated text.
// Loss runs and statements of values usually arrive as spreadsheets.
type excelProcessor struct{}

func (p *excelProcessor) Name() string { return "excel" }

func (p *excelProcessor) CanHandle(filename, contentType string) bool {
	if excelContentTypes[contentType] {
		return true
	}
	switch extension(filename) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

func (p *excelProcessor) Extract(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		fmt.Fprintf(&b, "## Sheet: %s\n", sheet)
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
