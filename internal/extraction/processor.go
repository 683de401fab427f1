package extraction

import (
	"path/filepath"
	"strings"
)

// Processor turns one uploaded document into plain text for the
// language model. CanHandle is consulted in registration order, so more
// specific processors register ahead of general ones.
type Processor interface {
	Name() string
	CanHandle(filename, contentType string) bool
	Extract(data []byte) (string, error)
}

// processors is the ordered registry. The AcroForm reader runs before
// the generic PDF text extractor so filled ACORD applications surface
// their field values instead of flattened page text.
func processors() []Processor {
	return []Processor{
		&acroFormProcessor{},
		&pdfProcessor{},
		&excelProcessor{},
		&textProcessor{},
	}
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func isPDF(filename, contentType string) bool {
	return contentType == "application/pdf" || extension(filename) == ".pdf"
}
