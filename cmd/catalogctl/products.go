package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage products",
	}
	cmd.AddCommand(c.productListCmd(), c.productGetCmd(), c.productCreateCmd(), c.productUpdateCmd(), c.productDeleteCmd())
	return cmd
}

func (c *cli) productListCmd() *cobra.Command {
	var (
		categoryID, brandID int64
		minPrice, maxPrice  float64
		minStock            int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		Long:  "List products. Only the filter flags that are given take part; all of them must match.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			f := model.NewProductFilter()
			if flags.Changed("category-id") {
				f = f.WithCategoryID(categoryID)
			}
			if flags.Changed("brand-id") {
				f = f.WithBrandID(brandID)
			}
			if flags.Changed("min-price") {
				if err := finite("min-price", minPrice); err != nil {
					return err
				}
				f = f.WithMinPrice(minPrice)
			}
			if flags.Changed("max-price") {
				if err := finite("max-price", maxPrice); err != nil {
					return err
				}
				f = f.WithMaxPrice(maxPrice)
			}
			if flags.Changed("min-stock") {
				f = f.WithMinStock(minStock)
			}

			products, err := c.services().Products.GetAll(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category-id", 0, "Only products in this category")
	cmd.Flags().Int64Var(&brandID, "brand-id", 0, "Only products of this brand")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price (inclusive)")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price (inclusive)")
	cmd.Flags().IntVar(&minStock, "min-stock", 0, "Minimum stock (inclusive)")
	return cmd
}

func (c *cli) productGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := c.services().Products.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), []model.Product{p})
		},
	}
}

func (c *cli) productCreateCmd() *cobra.Command {
	var p model.Product

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := finite("price", p.Price); err != nil {
				return err
			}
			saved, err := c.services().Products.Save(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product created: %d\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&p.Description, "description", "", "Product description")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "Price")
	cmd.Flags().IntVar(&p.Stock, "stock", 0, "Units in stock")
	cmd.Flags().Int64Var(&p.CategoryID, "category-id", 0, "Category id")
	cmd.Flags().Int64Var(&p.BrandID, "brand-id", 0, "Brand id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category-id")
	_ = cmd.MarkFlagRequired("brand-id")
	return cmd
}

func (c *cli) productUpdateCmd() *cobra.Command {
	var p model.Product

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a product",
		Long:  "Change fields of a product. Only the flags that are given are applied.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var patch model.ProductPatch
			if flags.Changed("name") {
				patch.Name = &p.Name
			}
			if flags.Changed("description") {
				patch.Description = &p.Description
			}
			if flags.Changed("price") {
				if err := finite("price", p.Price); err != nil {
					return err
				}
				patch.Price = &p.Price
			}
			if flags.Changed("stock") {
				patch.Stock = &p.Stock
			}
			if flags.Changed("category-id") {
				patch.CategoryID = &p.CategoryID
			}
			if flags.Changed("brand-id") {
				patch.BrandID = &p.BrandID
			}
			if patch == (model.ProductPatch{}) {
				return errNothingToUpdate
			}

			updated, err := c.services().Products.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), []model.Product{updated})
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&p.Description, "description", "", "Product description")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "Price")
	cmd.Flags().IntVar(&p.Stock, "stock", 0, "Units in stock")
	cmd.Flags().Int64Var(&p.CategoryID, "category-id", 0, "Category id")
	cmd.Flags().Int64Var(&p.BrandID, "brand-id", 0, "Brand id")
	return cmd
}

func (c *cli) productDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return reportDelete(cmd, "product", id, c.services().Products.DeleteByID)
		},
	}
}

var errNothingToUpdate = errors.New("nothing to update: set at least one field flag")

func finite(flag string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid --%s: must be a finite number", flag)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
