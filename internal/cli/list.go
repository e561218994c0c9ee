package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"countrycat/internal/catalog"
)

func newListCmd(e *env) *cobra.Command {
	var (
		search  string
		sortDir string
		page    int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Long: `Fetch the country list and print one page of it, applying the same
search, sort and paging rules as the interactive view.`,
		Example: `  countrycat list --search united --sort desc
  countrycat list --page 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, ok := catalog.ParseDirection(sortDir)
			if !ok {
				return fmt.Errorf("invalid --sort %q (want asc or desc)", sortDir)
			}
			state := catalog.State{Search: search, Direction: dir, Page: page}
			records := e.fetchOrEmpty(cmd.Context())
			renderPage(cmd.OutOrStdout(), state.Derive(records))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring of the official name")
	cmd.Flags().StringVar(&sortDir, "sort", "asc", "sort direction (asc|desc)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, 1-based")
	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"asc", "desc"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func renderPage(w io.Writer, page catalog.Page) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Flag", "Country Name", "cca2", "cca3", "Native Name", "Alt Spellings", "IDD"})
	for _, r := range page.Rows {
		t.AppendRow(table.Row{
			r.FlagImageURL(),
			r.DisplayName(),
			r.Code2(),
			r.Code3(),
			r.NativeOfficialName(),
			r.AltSpellingsText(),
			r.IDDSuffix(),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "page %d/%d (%d matches)\n", page.Number, page.PageCount, page.Filtered)
}
