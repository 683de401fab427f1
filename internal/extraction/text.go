package extraction

import (
	"strings"
	"unicode/utf8"
)

// textProcessor handles plain text and CSV documents.
type textProcessor struct{}

func (p *textProcessor) Name() string { return "text" }

func (p *textProcessor) CanHandle(filename, contentType string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch extension(filename) {
	case ".txt", ".csv", ".md":
		return true
	}
	return false
}

func (p *textProcessor) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrUnsupportedFile
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
