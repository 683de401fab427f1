package validation

import "reflect"

// Entity completeness weights. Loss history contributes a flat score:
// full credit when losses are reported, partial credit when the history
// is empty since many clean accounts legitimately have none.
const (
	applicantWeight   = 30
	locationsWeight   = 30
	coverageWeight    = 25
	lossesWeight      = 15
	lossesEmptyCredit = 10
)

// entityCompleteness scores how much of an entity's schema is filled in,
// as a 0-100 percentage. A field counts as filled when it is a non-empty
// string, a non-nil pointer, or a non-empty slice.
func entityCompleteness(entity any) int {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return 0
	}

	total := 0
	filled := 0
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanInterface() {
			continue
		}
		total++
		switch field.Kind() {
		case reflect.String:
			if field.String() != "" {
				filled++
			}
		case reflect.Pointer, reflect.Map:
			if !field.IsNil() {
				filled++
			}
		case reflect.Slice:
			if field.Len() > 0 {
				filled++
			}
		default:
			if !field.IsZero() {
				filled++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return filled * 100 / total
}
