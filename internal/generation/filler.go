package generation

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/primitives"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FillResult reports which resolved values landed in the template.
type FillResult struct {
	Filled    []string `json:"filled"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// TemplateFields lists the AcroForm field names a template exposes.
func TemplateFields(rs io.ReadSeeker) ([]string, error) {
	ctx, err := readContext(rs)
	if err != nil {
		return nil, err
	}

	fields, err := acroFormFields(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.name != "" {
			names = append(names, f.name)
		}
	}
	return names, nil
}

// FillTemplate writes the resolved values into the template's AcroForm
// fields and returns the filled PDF. Text fields receive the value as a
// string; button fields receive it as an appearance state name.
// Resolved values with no matching template field are reported, not
// treated as errors; ACORD templates vary by edition. With flatten set,
// every field is marked read-only so the output is no longer editable;
// the default keeps the form editable for carrier-side corrections.
func FillTemplate(rs io.ReadSeeker, values map[string]string, flatten bool) ([]byte, *FillResult, error) {
	ctx, err := readContext(rs)
	if err != nil {
		return nil, nil, err
	}

	fields, err := acroFormFields(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &FillResult{}
	matched := map[string]bool{}

	for _, f := range fields {
		value, ok := values[f.name]
		if !ok {
			continue
		}
		matched[f.name] = true

		if f.button {
			f.dict["V"] = types.Name(value)
			f.dict["AS"] = types.Name(value)
		} else {
			f.dict["V"] = types.StringLiteral(value)
			delete(f.dict, "AP")
		}
		result.Filled = append(result.Filled, f.name)
	}

	if flatten {
		for _, f := range fields {
			flags := 0
			if ff := f.dict.IntEntry("Ff"); ff != nil {
				flags = *ff
			}
			f.dict["Ff"] = types.Integer(flags | int(primitives.FieldReadOnly))
		}
	}

	for name := range values {
		if !matched[name] {
			result.Unmatched = append(result.Unmatched, name)
		}
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, nil, fmt.Errorf("write filled form: %w", err)
	}

	return buf.Bytes(), result, nil
}

type formField struct {
	name   string
	button bool
	dict   types.Dict
}

func readContext(rs io.ReadSeeker) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return ctx, nil
}

// acroFormFields walks the document catalog's AcroForm field tree and
// returns every named terminal field. NeedAppearances is switched on so
// viewers regenerate appearances for the values written here.
func acroFormFields(ctx *model.Context) ([]formField, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, ErrNoAcroForm
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil || acroFormDict == nil {
		return nil, ErrNoAcroForm
	}

	acroFormDict["NeedAppearances"] = types.Boolean(true)

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil, ErrNoAcroForm
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}

	var fields []formField
	for _, fieldObj := range fieldsArray {
		collectFields(ctx, fieldObj, "", &fields)
	}
	return fields, nil
}

// collectFields recurses through field kids, carrying the parent name
// prefix for fully qualified names.
func collectFields(ctx *model.Context, fieldObj types.Object, prefix string, out *[]formField) {
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
		if kids, err := ctx.DereferenceArray(kidsObj); err == nil && len(kids) > 0 {
			// Kids without their own T entries are widgets of this field.
			terminal := true
			for _, kid := range kids {
				if kidDict, err := ctx.DereferenceDict(kid); err == nil && kidDict != nil {
					if _, hasName := kidDict.Find("T"); hasName {
						terminal = false
						collectFields(ctx, kid, name, out)
					}
				}
			}
			if !terminal {
				return
			}
		}
	}

	if name == "" {
		return
	}

	*out = append(*out, formField{
		name:   name,
		button: fieldType(ctx, fieldDict) == "Btn",
		dict:   fieldDict,
	})
}

func fieldType(ctx *model.Context, fieldDict types.Dict) string {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return fieldType(ctx, parentDict)
			}
		}
		return ""
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return ""
	}
	return string(ftName)
}
