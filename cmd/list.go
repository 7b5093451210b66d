package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/coffeelab/coffeelab/internal/slogs"
)

type listOptions struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
}

func newListCmd() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Print one page of a resource",
		Example: `  coffeelab list orders --search pending
  coffeelab list stock --sort quantity --desc --page-size 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only show rows containing this term")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort by column key or label")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort in descending order")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "Page to print")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Rows per page")

	return cmd
}

func runList(ctx context.Context, w io.Writer, resource string, opts listOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := slogs.New(cfg.Settings().LogConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	rid, err := resolveResource(cfg, resource)
	if err != nil {
		return err
	}
	c, err := newClient(ctx, cfg, logger.Logger)
	if err != nil {
		return err
	}
	f := dao.NewFactory(c, cfg.Settings().RefreshDuration(), logger.Logger)
	acc, err := dao.AccessorFor(f, rid)
	if err != nil {
		return err
	}
	rows, err := acc.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", rid, err)
	}
	r, err := model.RendererFor(rid)
	if err != nil {
		return err
	}

	s := cfg.Settings()
	oo := append(s.TableOptions(rid.String()), model1.WithFormatter(render.NewFormatter(s.Location())))
	if opts.pageSize > 0 {
		oo = append(oo, model1.WithPageSize(opts.pageSize))
	}
	v, err := pageOf(r.Columns(), rows, opts, oo...)
	if err != nil {
		return err
	}

	return printView(w, v)
}

// resolveResource maps an alias or a group/resource name to a resource id.
func resolveResource(cfg *config.Config, name string) (*dao.ResourceID, error) {
	aa := config.NewAliases()
	_ = aa.Load()
	aa.MergeMap(cfg.Settings().Aliases)

	target, ok := aa.Resolve(name)
	if !ok {
		target = name
	}
	var rid dao.ResourceID
	if err := rid.Parse(target); err != nil {
		return nil, fmt.Errorf("unknown resource %q", name)
	}

	return &rid, nil
}

// pageOf searches, sorts and paginates rows.
func pageOf(cols model1.Columns, rows model1.Rows, opts listOptions, oo ...model1.Option) (model1.View, error) {
	tv, err := model1.NewTabularView(cols, rows, oo...)
	if err != nil {
		return model1.View{}, err
	}
	if opts.search != "" {
		tv.SetSearchTerm(opts.search)
	}
	if opts.sort != "" {
		key, ok := columnKey(cols, opts.sort)
		if !ok {
			return model1.View{}, fmt.Errorf("unknown column %q", opts.sort)
		}
		dir := model1.SortAsc
		if opts.desc {
			dir = model1.SortDesc
		}
		tv.SortBy(key, dir)
	}
	if opts.page > 1 {
		tv.GoToPage(opts.page)
	}

	return tv.View(), nil
}

func columnKey(cols model1.Columns, name string) (string, bool) {
	for _, c := range cols {
		if strings.EqualFold(c.Key, name) || strings.EqualFold(c.Label, name) {
			return c.Key, true
		}
	}

	return "", false
}

// printView writes the page as an aligned table followed by a summary line.
func printView(w io.Writer, v model1.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	hh := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		hh = append(hh, strings.ToUpper(c.Label))
	}
	fmt.Fprintln(tw, strings.Join(hh, "\t"))
	for _, cells := range v.Cells {
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\npage %d/%d, %d matching\n", v.CurrentPage, v.TotalPages, v.TotalMatching)
	return err
}
