package extraction

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// acroFormProcessor reads filled PDF form fields. Completed ACORD
// applications arrive this way, and their field values are far more
// reliable than text scraped off the page.
type acroFormProcessor struct{}

func (p *acroFormProcessor) Name() string { return "pdf-acroform" }

func (p *acroFormProcessor) CanHandle(filename, contentType string) bool {
	return isPDF(filename, contentType)
}

func (p *acroFormProcessor) Extract(data []byte) (string, error) {
	values, err := readFormValues(data)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", ErrEmptyDocument
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, values[name])
	}
	return b.String(), nil
}

// readFormValues walks the AcroForm field tree and collects the filled
// name/value pairs.
func readFormValues(data []byte) (map[string]string, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("read pdf catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, ErrEmptyDocument
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil || acroFormDict == nil {
		return nil, ErrEmptyDocument
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil, ErrEmptyDocument
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("read form fields: %w", err)
	}

	values := map[string]string{}
	for _, fieldObj := range fieldsArray {
		collectFormValues(ctx, fieldObj, "", values)
	}
	return values, nil
}

func collectFormValues(ctx *model.Context, fieldObj types.Object, prefix string, out map[string]string) {
	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil || fieldDict == nil {
		return
	}

	name := prefix
	if nameObj, found := fieldDict.Find("T"); found {
		if partial, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			if name != "" {
				name = name + "." + partial
			} else {
				name = partial
			}
		}
	}

	if kidsObj, found := fieldDict.Find("Kids"); found {
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil {
			for _, kid := range kids {
				collectFormValues(ctx, kid, name, out)
			}
		}
	}

	valueObj, found := fieldDict.Find("V")
	if !found || name == "" {
		return
	}

	if value, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil && value != "" {
		out[name] = value
		return
	}
	if value, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil && value != "" && value != "Off" {
		out[name] = string(value)
	}
}
