package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"countrycat/internal/country"
	"countrycat/internal/ui"
)

// ErrNotFound is returned by show when no record has the requested code.
var ErrNotFound = errors.New("country not found")

func newShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Print every field of one country",
		Long:  `Fetch the country list and print all fields of the country whose cca2 or cca3 code matches CODE.`,
		Example: `  countrycat show td
  countrycat show ZMB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := e.source.Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch countries: %w", err)
			}
			r, ok := findByCode(records, args[0])
			if !ok {
				return fmt.Errorf("%w: %s", ErrNotFound, args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ui.RenderFields(r, false))
			return err
		},
	}
}

// findByCode matches code against cca2 and cca3, ignoring case.
func findByCode(records []country.Record, code string) (country.Record, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return country.Record{}, false
	}
	for _, r := range records {
		if strings.EqualFold(r.Code2(), code) || strings.EqualFold(r.Code3(), code) {
			return r, true
		}
	}
	return country.Record{}, false
}
