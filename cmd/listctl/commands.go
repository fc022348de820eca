package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nrfta/listing-go"
	"github.com/nrfta/listing-go/dashboard"
	"github.com/nrfta/listing-go/filter"
	"github.com/nrfta/listing-go/offset"
)

func newStripCmd(a *app) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "strip <total-items> <current-page>",
		Short: "Print the page strip for a result count",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrap(err, "total-items")
			}
			current, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(err, "current-page")
			}
			if size <= 0 {
				size = a.cfg.Paging.DefaultSize
			}
			pageCfg := listing.NewPageConfig().WithMaxSize(a.cfg.Paging.MaxSize)
			if err := pageCfg.Validate(listing.NewPageArgs(current, size)); err != nil {
				return err
			}

			tokens := listing.PlanStrip(total, size, current)
			if a.output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), tokens)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderStrip(tokens, current))
			return err
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "page size (defaults to the configured default)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		search string
		facets []string
		page   int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Print one page of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.registry.Browser(args[0])
			if err != nil {
				return err
			}
			q, err := parseQuery(search, facets)
			if err != nil {
				return err
			}

			if cursor != "" {
				size := listing.NewPageConfig().
					WithDefaultSize(a.cfg.Paging.PageSize(b.Kind())).
					WithMaxSize(a.cfg.Paging.MaxSize).
					EffectiveSize(nil)
				page = offset.PageForCursor(&cursor, size)
			}

			out, err := b.Browse(cmd.Context(), q, page)
			if err != nil {
				return err
			}
			if a.output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), out)
			}
			return writeListing(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().StringArrayVarP(&facets, "facet", "f", nil, "facet selection as name=value (repeatable)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().StringVar(&cursor, "cursor", "", "open the page holding the row with this cursor (overrides --page)")
	return cmd
}

func newFacetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "facets <kind> [facet]",
		Short: "Print the facets of a list, or the values of one facet",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.registry.Browser(args[0])
			if err != nil {
				return err
			}

			values := b.Facets()
			if len(args) == 2 {
				if values, err = b.FacetValues(args[1]); err != nil {
					return err
				}
			}
			if a.output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), values)
			}
			for _, v := range values {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Print the available lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tPAGE SIZE\tSEARCH\tFACETS")
			for _, kind := range a.registry.Kinds() {
				b, err := a.registry.Browser(kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					kind,
					a.cfg.Paging.PageSize(kind),
					strings.Join(b.SearchFields(), ","),
					strings.Join(b.Facets(), ","),
				)
			}
			return w.Flush()
		},
	}
}

// parseQuery builds a query from repeated name=value flags. Repeating a facet
// selects several values of it.
func parseQuery(search string, facets []string) (filter.Query, error) {
	q := filter.NewQuery(search)
	for _, f := range facets {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return q, errors.Errorf("facet %q must be name=value", f)
		}
		if !q.IsSelected(name, value) {
			q = q.Toggle(name, value)
		}
	}
	return q, nil
}

// renderStrip prints tokens the way a pager does: "1 … 6 [7] 8 … 13".
func renderStrip(tokens []listing.Token, current int) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		switch {
		case t.IsEllipsis():
			parts[i] = "…"
		case t.Page() == current:
			parts[i] = "[" + t.String() + "]"
		default:
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " ")
}

func writeListing(w io.Writer, l *dashboard.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tRECORD")
	for _, row := range l.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%+v\n", row.Number, row.ID, row.Record)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\npage %d of %d (%d records)  %s\n",
		l.CurrentPage, l.TotalPages, l.TotalCount, renderStrip(l.Tokens, l.CurrentPage))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
