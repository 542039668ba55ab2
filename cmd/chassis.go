package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/metrics"
	"github.com/metal-toolbox/rackview/internal/render"
	"github.com/metal-toolbox/rackview/internal/store"
)

type chassisFlags struct {
	assetID   string
	focusSlot int
	format    string
}

var (
	chassisFlagSet = &chassisFlags{}
)

var cmdChassis = &cobra.Command{
	Use:   "chassis --asset <id> [--focus-slot N]",
	Short: "Print the slot grid of a blade chassis, a blade identifier prints its chassis with the blade slot focused",
	Run: func(cmd *cobra.Command, _ []string) {
		chassis(cmd.Context())
	},
}

func chassis(ctx context.Context) {
	rv, repository := newApp(ctx)

	id, err := uuid.Parse(chassisFlagSet.assetID)
	if err != nil {
		rv.Logger.Fatal("--asset: " + err.Error())
	}

	snapshot, err := store.ChassisSnapshot(ctx, repository, id, chassisFlagSet.focusSlot)
	if err != nil {
		rv.Logger.Fatal(err)
	}

	start := time.Now()
	view := rv.Builder().ChassisView(snapshot)

	metrics.ObserveLayoutBuild("chassis", start)

	switch chassisFlagSet.format {
	case formatJSON:
		printJSON(view)
	case formatDump:
		spew.Dump(view)
	default:
		fmt.Println(render.ChassisView(view))

		for _, slot := range view.Slots {
			if event, ok := layout.NavigateSlot(slot); ok && slot.Focused {
				fmt.Println("\nfocused: " + event.Route)
			}
		}
	}
}

func init() {
	cmdChassis.Flags().StringVar(&chassisFlagSet.assetID, "asset", "", "chassis or blade asset identifier")
	cmdChassis.Flags().IntVar(&chassisFlagSet.focusSlot, "focus-slot", 0, "slot to focus, ignored for a blade identifier")
	cmdChassis.Flags().StringVar(&chassisFlagSet.format, "format", formatText, "output format - text, json, dump")

	if err := cmdChassis.MarkFlagRequired("asset"); err != nil {
		log.Fatal(err)
	}

	rootCmd.AddCommand(cmdChassis)
}
