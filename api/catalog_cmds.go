package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/chuzone-catalog/internal/app"
	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// withCatalog opens the configured catalog for the duration of fn.
func (c *cli) withCatalog(cmd *cobra.Command, fn func(*catalog.Catalog) error) error {
	a, err := app.Open(cmd.Context(), c.cfg, c.log, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := fn(a.Catalog); err != nil {
		return err
	}
	for _, w := range a.Catalog.Derive().Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	return nil
}

func (c *cli) listCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd, func(cat *catalog.Catalog) error {
				products := cat.ProductsIn(category)
				if len(products) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Aucun produit trouvé")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY\tADDED")
				for _, p := range products {
					fmt.Fprintf(tw, "%s\t%s\t%s €\t%s\t%s\n",
						p.ID, p.Name, catalog.FormatPrice(p.Price), p.Category, p.CreatedAt.Local().Format("02/01/2006"))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PRICE CATEGORY",
		Short: "Add a product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd, func(cat *catalog.Catalog) error {
				p, err := cat.AddProduct(cmd.Context(), catalog.ProductInput{
					Name:     args[0],
					Price:    args[1],
					Category: args[2],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (%s) %s €\n", p.ID, p.Name, p.Category, catalog.FormatPrice(p.Price))
				return nil
			})
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd, func(cat *catalog.Catalog) error {
				conf := cat.RequestDelete(models.ParseID(args[0]))
				return resolve(cmd, cat, conf, yes, "Êtes-vous sûr de vouloir supprimer ce produit ?")
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd, func(cat *catalog.Catalog) error {
				conf := cat.RequestClear()
				return resolve(cmd, cat, conf, yes, "Êtes-vous sûr de vouloir supprimer tous les produits ?")
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd, func(cat *catalog.Catalog) error {
				stats := cat.Derive().Stats
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Produits Total: %d\n", stats.Count)
				fmt.Fprintf(out, "Catégories: %d\n", stats.CategoryCount)
				fmt.Fprintf(out, "Valeur Totale: %s €\n", stats.TotalValue)
				return nil
			})
		},
	}
}

// resolve asks the question unless yes is set, then confirms or cancels.
func resolve(cmd *cobra.Command, cat *catalog.Catalog, conf catalog.Confirmation, yes bool, question string) error {
	out := cmd.OutOrStdout()
	if !yes {
		fmt.Fprintf(out, "%s [y/N] ", question)
		if !readYes(cmd.InOrStdin()) {
			if _, err := cat.Cancel(conf.Token); err != nil {
				return err
			}
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}
	if _, err := cat.Confirm(cmd.Context(), conf.Token); err != nil {
		return err
	}
	switch conf.Action {
	case catalog.ActionDelete:
		fmt.Fprintf(out, "Deleted %s\n", conf.ProductID.String())
	case catalog.ActionClear:
		fmt.Fprintln(out, "Catalog cleared")
	}
	return nil
}

func readYes(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
