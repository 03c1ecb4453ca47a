package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/zcbond/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders results with the named formatter and writes them to w.
func GenerateReport(w io.Writer, results *domain.PricingComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return WriteFormatted(f, results, w)
}

// SaveConfiguration writes config as YAML to filename.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := MarshalConfiguration(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// MarshalConfiguration encodes config as YAML.
func MarshalConfiguration(config *domain.Configuration) ([]byte, error) {
	return yaml.Marshal(config)
}
