package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/service"
)

// row is what the table printer needs from a category or a brand.
type row interface {
	cells() []string
}

type namedService[R row] interface {
	list(ctx context.Context) ([]R, error)
	get(ctx context.Context, id int64) (R, error)
	create(ctx context.Context, name, description string) (int64, error)
	update(ctx context.Context, id int64, name, description *string) (R, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// namedCmd builds the list/get/create/update/delete tree shared by categories and brands.
func namedCmd[R row](c *cli, plural, singular string, svc func() namedService[R]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     plural,
		Aliases: []string{singular},
		Short:   "Manage " + plural,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := svc().list(cmd.Context())
			if err != nil {
				return err
			}
			return printNamed(cmd.OutOrStdout(), rows)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := svc().get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printNamed(cmd.OutOrStdout(), []R{r})
		},
	}

	var name, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + singular,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := svc().create(cmd.Context(), name, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s created: %d\n", capitalize(singular), id)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Unique name")
	create.Flags().StringVar(&description, "description", "", "Description")
	_ = create.MarkFlagRequired("name")

	var newName, newDescription string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or describe a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var namePtr, descPtr *string
			if cmd.Flags().Changed("name") {
				namePtr = &newName
			}
			if cmd.Flags().Changed("description") {
				descPtr = &newDescription
			}
			if namePtr == nil && descPtr == nil {
				return errNothingToUpdate
			}
			r, err := svc().update(cmd.Context(), id, namePtr, descPtr)
			if err != nil {
				return err
			}
			return printNamed(cmd.OutOrStdout(), []R{r})
		},
	}
	update.Flags().StringVar(&newName, "name", "", "New unique name")
	update.Flags().StringVar(&newDescription, "description", "", "New description")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return reportDelete(cmd, singular, id, svc().DeleteByID)
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

type categoryRow model.Category

func (r categoryRow) cells() []string {
	return []string{fmt.Sprint(r.ID), r.Name, r.Description}
}

type categories struct{ service.CategoryService }

func (s categories) list(ctx context.Context) ([]categoryRow, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]categoryRow, len(all))
	for i, c := range all {
		rows[i] = categoryRow(c)
	}
	return rows, nil
}

func (s categories) get(ctx context.Context, id int64) (categoryRow, error) {
	c, err := s.GetByID(ctx, id)
	return categoryRow(c), err
}

func (s categories) create(ctx context.Context, name, description string) (int64, error) {
	c, err := s.Save(ctx, model.Category{Name: name, Description: description})
	return c.ID, err
}

func (s categories) update(ctx context.Context, id int64, name, description *string) (categoryRow, error) {
	c, err := s.Update(ctx, id, model.CategoryPatch{Name: name, Description: description})
	return categoryRow(c), err
}

type brandRow model.Brand

func (r brandRow) cells() []string {
	return []string{fmt.Sprint(r.ID), r.Name, r.Description}
}

type brands struct{ service.BrandService }

func (s brands) list(ctx context.Context) ([]brandRow, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]brandRow, len(all))
	for i, b := range all {
		rows[i] = brandRow(b)
	}
	return rows, nil
}

func (s brands) get(ctx context.Context, id int64) (brandRow, error) {
	b, err := s.GetByID(ctx, id)
	return brandRow(b), err
}

func (s brands) create(ctx context.Context, name, description string) (int64, error) {
	b, err := s.Save(ctx, model.Brand{Name: name, Description: description})
	return b.ID, err
}

func (s brands) update(ctx context.Context, id int64, name, description *string) (brandRow, error) {
	b, err := s.Update(ctx, id, model.BrandPatch{Name: name, Description: description})
	return brandRow(b), err
}
