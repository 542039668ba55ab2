package cmd

import (
	"context"
	"log"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cmdGet = &cobra.Command{
	Use:   "get",
	Short: "get inventory snapshots [rack|asset]",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// command get rack
type getRackFlags struct {
	rack string
}

var (
	getRackFlagSet = &getRackFlags{}
)

var cmdGetRack = &cobra.Command{
	Use:   "rack",
	Short: "Dump the rack snapshot the elevation is built from",
	Run: func(cmd *cobra.Command, _ []string) {
		getRack(cmd.Context())
	},
}

func getRack(ctx context.Context) {
	rv, repository := newApp(ctx)

	snapshot, err := repository.RackSnapshot(ctx, getRackFlagSet.rack)
	if err != nil {
		rv.Logger.Fatal(err)
	}

	spew.Dump(snapshot)
}

// command get asset
type getAssetFlags struct {
	assetID string
}

var (
	getAssetFlagSet = &getAssetFlags{}
)

var cmdGetAsset = &cobra.Command{
	Use:   "asset",
	Short: "Dump an asset as resolved by the inventory store",
	Run: func(cmd *cobra.Command, _ []string) {
		getAsset(cmd.Context())
	},
}

func getAsset(ctx context.Context) {
	rv, repository := newApp(ctx)

	id, err := uuid.Parse(getAssetFlagSet.assetID)
	if err != nil {
		rv.Logger.Fatal("--asset: " + err.Error())
	}

	ref, err := repository.AssetByID(ctx, id)
	if err != nil {
		rv.Logger.Fatal(err)
	}

	spew.Dump(ref)
}

func init() {
	rootCmd.AddCommand(cmdGet)

	cmdGetRack.PersistentFlags().StringVar(&getRackFlagSet.rack, "rack", "", "rack identifier or name, A1")

	if err := cmdGetRack.MarkPersistentFlagRequired("rack"); err != nil {
		log.Fatal(err)
	}

	cmdGetAsset.PersistentFlags().StringVar(&getAssetFlagSet.assetID, "asset", "", "inventory asset identifier")

	if err := cmdGetAsset.MarkPersistentFlagRequired("asset"); err != nil {
		log.Fatal(err)
	}

	cmdGet.AddCommand(cmdGetRack)
	cmdGet.AddCommand(cmdGetAsset)
}
