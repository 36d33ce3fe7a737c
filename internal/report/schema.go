package report

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed results_schema.json
var resultsSchema []byte

// ValidationError reports schema violations found in an encoded report.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("report validation failed:\n")
	for i, problem := range e.Problems {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, problem))
	}
	return sb.String()
}

// Validate checks an encoded report against the embedded JSON schema. A
// report that fails validation must not be written.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(resultsSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Problems = append(verr.Problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}
