// Command catalogctl manages the catalog from the terminal. It talks to the same
// store and cache the HTTP service uses, so writes made here invalidate the
// service's cached entries as well.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/app"
)

func main() {
	c := &cli{open: openSession}
	err := c.rootCmd().Execute()
	if closeErr := c.shutdown(context.Background()); closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is an open connection to the catalog store and cache.
type session struct {
	services *app.ServiceComponents
	close    func(ctx context.Context) error
}

type opener func(ctx context.Context, configPath string) (*session, error)

type cli struct {
	open       opener
	configPath string
	session    *session
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage catalog products, categories and brands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.session != nil {
				return nil
			}
			s, err := c.open(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}
			c.session = s
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", os.Getenv("CONFIG_FILE"), "YAML configuration file")

	root.AddCommand(
		c.productsCmd(),
		namedCmd(c, "categories", "category", func() namedService[categoryRow] { return categories{c.services().Categories} }),
		namedCmd(c, "brands", "brand", func() namedService[brandRow] { return brands{c.services().Brands} }),
	)
	return root
}

func (c *cli) services() *app.ServiceComponents {
	return c.session.services
}

func (c *cli) shutdown(ctx context.Context) error {
	if c.session == nil || c.session.close == nil {
		return nil
	}
	return c.session.close(ctx)
}

// openSession builds the repositories, cache and services from configuration.
func openSession(ctx context.Context, configPath string) (*session, error) {
	cfg := config.Load()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app.InitializeLogger(cfg.Log)

	db, err := app.InitializeDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	provider, err := app.InitializeCache(ctx, cfg.Cache)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	return &session{
		services: app.InitializeServices(db, provider, cfg.Users),
		close: func(ctx context.Context) error {
			return errors.Join(provider.Close(), db.Close(ctx))
		},
	}, nil
}
