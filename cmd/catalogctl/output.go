package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/service"
)

func printProducts(out io.Writer, products []model.Product) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tBRAND")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%d\t%d\n", p.ID, p.Name, p.Price, p.Stock, p.CategoryID, p.BrandID)
	}
	return w.Flush()
}

func printNamed[R row](out io.Writer, rows []R) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r.cells(), "\t"))
	}
	return w.Flush()
}

// reportDelete runs del and turns a missing id into service.ErrNotFound.
func reportDelete(cmd *cobra.Command, what string, id int64, del func(context.Context, int64) (bool, error)) error {
	deleted, err := del(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%s %d: %w", what, id, service.ErrNotFound)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s deleted: %d\n", capitalize(what), id)
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
