package invoice

import "fmt"

// ValidationResult is the outcome of one check against one field.
type ValidationResult struct {
	Passed        bool   `json:"passed"`
	FieldPath     string `json:"field_path"`
	ExpectedValue string `json:"expected_value"`
	ActualValue   string `json:"actual_value"`
	Message       string `json:"message"`
}

func itemPath(i int, field string) string {
	return fmt.Sprintf("items[%d].%s", i, field)
}
