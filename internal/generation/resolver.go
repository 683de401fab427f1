package generation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/pkg/formatting"
)

// Resolution is the outcome of resolving a form mapping against a
// submission's canonical data. Fields holds the PDF field values ready
// to fill; Skipped lists the canonical paths that had no data.
type Resolution struct {
	FormType string            `json:"form_type"`
	Fields   map[string]string `json:"fields"`
	Skipped  []string          `json:"skipped,omitempty"`
}

// Resolve walks the canonical data with a form mapping and produces the
// concrete field values. Missing data is never an error: unresolvable
// paths are recorded as skipped so callers can report coverage.
func Resolve(data map[string]any, mapping FormMapping) Resolution {
	res := Resolution{
		FormType: mapping.FormType,
		Fields:   map[string]string{},
	}

	for _, path := range mapping.SourcePaths() {
		fm := mapping.Fields[path]

		group, rest, repeating := strings.Cut(path, "[].")
		if !repeating {
			value, ok := lookup(data, path)
			if !ok {
				res.Skipped = append(res.Skipped, path)
				continue
			}
			applyValue(&res, fm, fm.Target, value)
			continue
		}

		rows, ok := lookupRows(data, group)
		if !ok || len(rows) == 0 {
			res.Skipped = append(res.Skipped, path)
			continue
		}

		max := len(rows)
		if fm.MaxRows >= 1 && fm.MaxRows < max {
			max = fm.MaxRows
		}

		resolved := false
		for n := 0; n < max; n++ {
			value, ok := lookup(rows[n], rest)
			if !ok {
				continue
			}
			target := strings.ReplaceAll(fm.Target, "{n}", strconv.Itoa(n+1))
			applyValue(&res, fm, target, value)
			resolved = true
		}
		if !resolved {
			res.Skipped = append(res.Skipped, path)
		}
	}

	return res
}

func applyValue(res *Resolution, fm FieldMapping, target string, value any) {
	if fm.Checkbox {
		if !truthy(value) {
			// Falsy values still resolve the field, they just leave the
			// checkbox unchecked.
			res.Fields[target] = ""
			return
		}
		on := fm.On
		if on == "" {
			on = "Yes"
		}
		res.Fields[target] = on
		return
	}
	res.Fields[target] = formatValue(value, fm.Format)
}

// lookup walks a dotted path through nested maps, short-circuiting on
// any missing segment.
func lookup(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// lookupRows resolves a path to a slice of row maps.
func lookupRows(data map[string]any, path string) ([]map[string]any, bool) {
	value, ok := lookup(data, path)
	if !ok {
		return nil, false
	}

	switch rows := value.(type) {
	case []map[string]any:
		return rows, true
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			m, ok := row.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

// formatValue renders a canonical value for a PDF field. Formats degrade
// to the plain string rendering when the value does not fit the format.
func formatValue(value any, format string) string {
	switch {
	case strings.HasPrefix(format, "date"):
		if s, ok := value.(string); ok {
			if out, err := formatting.FormatDate(s); err == nil {
				return out
			}
		}
	case strings.HasPrefix(format, "money"):
		if f, ok := toFloat(value); ok {
			return formatting.FormatMoney(f, strings.HasSuffix(format, "$"))
		}
	case strings.HasPrefix(format, "number"):
		if f, ok := toFloat(value); ok {
			return formatting.FormatNumber(f, 0)
		}
	}
	return plain(value)
}

func plain(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case submission.Date:
		return v.ISO()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		return f, err == nil
	}
	return 0, false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "no", "false", "n", "0":
			return false
		}
		return true
	case int:
		return v != 0
	case float64:
		return v != 0
	case nil:
		return false
	}
	return true
}
