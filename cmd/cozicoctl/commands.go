package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	appcatalog "github.com/satyaprakrati/cozico/internal/application/catalog"
	"github.com/satyaprakrati/cozico/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
)

type cli struct {
	out      io.Writer
	asJSON   bool
	products *appcatalog.ProductService
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "cozicoctl",
		Short:         "Inspect the Cozico catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			repo, err := persistence.NewStaticCatalogRepository()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			c.products = appcatalog.NewProductService(repo, repo, repo, appcatalog.ProductServiceOptions{})
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table")

	root.AddCommand(c.productsCmd(), c.productCmd(), c.collectionsCmd(), c.summaryCmd())
	return root
}

func (c *cli) productsCmd() *cobra.Command {
	var (
		req                appcatalog.ListProductsRequest
		minPrice, maxPrice int64
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products with the storefront filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-price") {
				req.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				req.MaxPrice = &maxPrice
			}
			list, err := c.products.List(cmd.Context(), req)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.writeJSON(list)
			}
			fmt.Fprintf(c.out, "%s (%d)\n", list.Title, list.Count)
			return c.productTable(list.Products)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Category, "category", "", "Category or subcategory id")
	f.StringVar(&req.Filter, "filter", "", "bestsellers or new")
	f.StringVar(&req.Sort, "sort", "", "featured, price-asc, price-desc, rating or newest")
	f.StringVar(&req.Sizes, "sizes", "", "Comma separated sizes")
	f.StringVar(&req.Colors, "colors", "", "Comma separated colors")
	f.Int64Var(&minPrice, "min-price", 0, "Minimum price in rupees")
	f.Int64Var(&maxPrice, "max-price", 0, "Maximum price in rupees")
	return cmd
}

func (c *cli) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product and its related items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := c.products.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.writeJSON(detail)
			}

			p := detail.Product
			fmt.Fprintf(c.out, "%s\n", p.Name)
			fmt.Fprintf(c.out, "  category  %s\n", detail.CategoryName)
			fmt.Fprintf(c.out, "  price     %s\n", p.Price.Display)
			if p.OriginalPrice != nil {
				fmt.Fprintf(c.out, "  was       %s (-%d%%)\n", p.OriginalPrice.Display, p.DiscountPercent)
			}
			fmt.Fprintf(c.out, "  rating    %.1f (%d reviews)\n", p.Rating, p.Reviews)
			fmt.Fprintf(c.out, "  sizes     %s\n", strings.Join(p.Sizes, ", "))
			colors := make([]string, 0, len(p.Colors))
			for _, col := range p.Colors {
				colors = append(colors, col.Name)
			}
			fmt.Fprintf(c.out, "  colors    %s\n", strings.Join(colors, ", "))
			fmt.Fprintf(c.out, "  in stock  %t\n", p.InStock)
			if len(detail.Related) > 0 {
				fmt.Fprintln(c.out, "\nYou may also like")
				return c.productTable(detail.Related)
			}
			return nil
		},
	}
}

func (c *cli) collectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List curated collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections, err := c.products.Collections(cmd.Context())
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.writeJSON(collections)
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRODUCTS")
			for _, col := range collections {
				fmt.Fprintf(w, "%s\t%s\t%d\n", col.ID, col.Name, col.ProductCount)
			}
			return w.Flush()
		},
	}
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count products per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := c.products.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.writeJSON(categories)
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSLUG\tPRODUCTS")
			total := 0
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%d\n", cat.Name, cat.Slug, cat.Count)
				total += cat.Count
			}
			fmt.Fprintf(w, "TOTAL\t\t%d\n", total)
			return w.Flush()
		},
	}
}

func (c *cli) productTable(products []appcatalog.ProductResponse) error {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Category, p.Price.Display, p.Rating)
	}
	return w.Flush()
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
