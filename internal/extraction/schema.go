package extraction

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchema guards the model output before merge: categories must be
// the right shape and the fields the pipeline depends on must carry the
// right types. Unknown keys pass through; the merge step ignores what it
// does not recognize.
const payloadSchema = `{
	"type": "object",
	"properties": {
		"applicant": {
			"type": "object",
			"properties": {
				"business_name": {"type": "string"},
				"fein": {"type": "string"},
				"naics_code": {"type": "string"},
				"email": {"type": "string"},
				"years_in_business": {"type": "integer"}
			}
		},
		"locations": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"address_line1": {"type": "string"},
					"city": {"type": "string"},
					"state": {"type": "string"},
					"zip_code": {"type": "string"},
					"year_built": {"type": "integer"},
					"total_square_feet": {"type": "integer"},
					"building_value": {"type": "number"},
					"contents_value": {"type": "number"},
					"business_income_value": {"type": "number"},
					"total_insured_value": {"type": "number"},
					"sprinkler_system": {"type": "boolean"}
				}
			}
		},
		"coverage": {
			"type": "object",
			"properties": {
				"policy_type": {"type": "string"},
				"effective_date": {"type": "string"},
				"expiration_date": {"type": "string"},
				"policy_term_months": {"type": "integer"},
				"building_limit": {"type": "number"},
				"each_occurrence_limit": {"type": "number"},
				"general_aggregate_limit": {"type": "number"}
			}
		},
		"loss_history": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"loss_date": {"type": "string"},
					"claim_number": {"type": "string"},
					"loss_amount": {"type": "number"},
					"paid_amount": {"type": "number"},
					"reserved_amount": {"type": "number"},
					"claim_status": {"type": "string"}
				}
			}
		},
		"workers_comp": {
			"type": "object",
			"properties": {
				"total_employees": {"type": "integer"},
				"states": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"state": {"type": "string"},
							"employees": {"type": "integer"},
							"annual_payroll": {"type": "number"}
						}
					}
				}
			}
		}
	}
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", strings.NewReader(payloadSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("extraction.json")
}

// validatePayload checks a decoded model response against the
// extraction schema.
func validatePayload(decoded any) error {
	if err := compiledSchema.Validate(decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	return nil
}
