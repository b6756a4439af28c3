// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"slices"

	"github.com/iwvelando/event-viability/pkg/constants"
)

// OutputFormats lists every supported report format.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatXLSX,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV,
			constants.OutputFormatJSON, constants.OutputFormatXLSX, format)
	}
	return nil
}
