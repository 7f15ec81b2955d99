package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tracknstock/internal/domain"
	"tracknstock/internal/export"
	"tracknstock/internal/filter"
	"tracknstock/internal/form"
	"tracknstock/internal/format"
	"tracknstock/internal/product/usecase"
	"tracknstock/internal/viewstate"
)

func listCmd(a *app) *cobra.Command {
	var search, status, category, brand string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := filter.ParseStatus(status); !ok {
				return fmt.Errorf("unknown status %q (want all, low or in-stock)", status)
			}
			state := viewstate.Reduce(viewstate.New(),
				viewstate.SetSearch{Text: search},
				viewstate.SetStatus{Status: status},
				viewstate.SelectCategory{Category: category},
				viewstate.SelectBrand{Brand: brand},
			)

			products, err := a.inventory.Products(cmd.Context())
			if err != nil {
				return err
			}
			visible := state.Visible(products)
			if err := printProducts(cmd.OutOrStdout(), visible); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d products\n", len(visible), len(products))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "match name, brand or category")
	cmd.Flags().StringVar(&status, "status", string(filter.StatusAll), "all, low or in-stock")
	cmd.Flags().StringVar(&category, "category", filter.All, "category name")
	cmd.Flags().StringVar(&brand, "brand", filter.All, "brand name")
	return cmd
}

func printProducts(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBRAND\tNAME\tCATEGORY\tQTY\tMIN\tPRICE\tSTATUS")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			p.ID, p.Supplier, p.Name, p.Category, p.Quantity, p.MinStock, format.Price(p.Price), p.StockStatus().Label())
	}
	return tw.Flush()
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.inventory.Load(cmd.Context())
			if err != nil {
				return err
			}
			s := snap.Statistics
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total products\t%d\n", s.TotalProducts)
			fmt.Fprintf(tw, "Low stock\t%d\n", s.LowStockCount)
			fmt.Fprintf(tw, "Out of stock\t%d\n", s.OutOfStockCount)
			fmt.Fprintf(tw, "Total value\t%s\n", format.Price(s.TotalValue))
			return tw.Flush()
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every product to a CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.inventory.Products(cmd.Context())
			if err != nil {
				return err
			}

			if output == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), products)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.WriteCSV(f, products); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", len(products), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", export.FileName, `file to write, "-" for stdout`)
	return cmd
}

type productFlags struct {
	buffer form.Buffer
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.buffer.Name, "name", "", "product name")
	cmd.Flags().StringVar(&f.buffer.Category, "category", "", "category")
	cmd.Flags().StringVar(&f.buffer.Supplier, "brand", "", "brand")
	cmd.Flags().StringVar(&f.buffer.Quantity, "quantity", "", "units in stock")
	cmd.Flags().StringVar(&f.buffer.MinStock, "min-stock", "", "reorder threshold")
	cmd.Flags().StringVar(&f.buffer.Price, "price", "", "unit price in rupees")
}

// over copies the flags the user set onto base.
func (f *productFlags) over(cmd *cobra.Command, base form.Buffer) form.Buffer {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("name", &base.Name, f.buffer.Name)
	set("category", &base.Category, f.buffer.Category)
	set("brand", &base.Supplier, f.buffer.Supplier)
	set("quantity", &base.Quantity, f.buffer.Quantity)
	set("min-stock", &base.MinStock, f.buffer.MinStock)
	set("price", &base.Price, f.buffer.Price)
	return base
}

func addCmd(a *app) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modal, err := form.NewClosed().OpenAdd("")
			if err != nil {
				return err
			}
			if modal, err = modal.WithBuffer(flags.buffer); err != nil {
				return err
			}
			_, saved, err := a.inventory.Submit(cmd.Context(), modal)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product added successfully! (id %d)\n", saved.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func updateCmd(a *app) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a product; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.find(cmd, args[0])
			if err != nil {
				return err
			}
			modal, err := form.NewClosed().OpenEdit(p)
			if err != nil {
				return err
			}
			if modal, err = modal.WithBuffer(flags.over(cmd, modal.Buffer())); err != nil {
				return err
			}
			if _, _, err := a.inventory.Submit(cmd.Context(), modal); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product updated successfully!")
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.find(cmd, args[0])
			if err != nil {
				return err
			}

			confirmed := yes
			if !confirmed {
				confirmed, err = confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete %q (%s)? [y/N]: ", p.Name, p.Supplier))
				if err != nil {
					return err
				}
			}

			err = a.inventory.Delete(cmd.Context(), p.ID, confirmed)
			if errors.Is(err, usecase.ErrDeleteNotConfirmed) {
				fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product deleted successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) find(cmd *cobra.Command, raw string) (domain.Product, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return domain.Product{}, fmt.Errorf("invalid product id %q", raw)
	}
	products, err := a.inventory.Products(cmd.Context())
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %d not found", id)
}

// confirm asks question and accepts "y" or "yes". End of input counts as no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
