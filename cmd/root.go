package cmd

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/rackview/internal/app"
	"github.com/metal-toolbox/rackview/internal/model"
	"github.com/metal-toolbox/rackview/internal/store"
)

var (
	cfgFile    string
	logLevel   string
	storeParam string
)

var (
	ErrInventoryStore = errors.New("inventory store error")
)

var rootCmd = &cobra.Command{
	Use:   model.AppName,
	Short: "rackview renders rack elevations and blade chassis slot grids from the inventory",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp returns the app and the inventory store for CLI commands, exiting on error.
func newApp(ctx context.Context) (*app.App, store.Repository) {
	rv, _, err := app.New(storeParam, cfgFile, logLevel)
	if err != nil {
		log.Fatal(err)
	}

	repository, err := initStore(ctx, rv)
	if err != nil {
		rv.Logger.Fatal(err)
	}

	return rv, repository
}

func initStore(ctx context.Context, rv *app.App) (store.Repository, error) {
	switch rv.Config.StoreKind {
	case model.StoreKindYaml:
		repository, err := store.NewYamlInventory(rv.Config.StoreFile, rv.Logger)
		if err != nil {
			return nil, err
		}

		return repository, nil
	case model.StoreKindInventoryAPI:
		repository, err := store.NewInventoryAPIStore(ctx, rv.Config.InventoryAPIOptions, rv.Logger)
		if err != nil {
			return nil, err
		}

		return repository, nil
	}

	return nil, errors.Wrap(ErrInventoryStore, "expected a valid inventory store parameter")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file in the YAML format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "set logging level - debug, trace")
	rootCmd.PersistentFlags().StringVar(&storeParam, "store", "", "Inventory store to read snapshots from - 'inventoryapi' or an inventory file with a .yml/.yaml extension")
}
