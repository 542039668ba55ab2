package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/rackview/internal/metrics"
	"github.com/metal-toolbox/rackview/internal/model"
	"github.com/metal-toolbox/rackview/internal/render"
	"github.com/metal-toolbox/rackview/internal/store"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatDump = "dump"
)

type elevationFlags struct {
	rack      string
	rows      string
	nums      string
	chassisID string
	focusSlot int
	format    string
}

var (
	elevationFlagSet = &elevationFlags{}
)

var cmdElevation = &cobra.Command{
	Use:   "elevation --rack <id|name> | --rows A-C --nums 1-4",
	Short: "Print the elevation of a rack, or of every rack in a row and number range",
	Run: func(cmd *cobra.Command, _ []string) {
		elevation(cmd.Context())
	},
}

func elevation(ctx context.Context) {
	rv, repository := newApp(ctx)
	builder := rv.Builder()

	var chassisID uuid.UUID

	if elevationFlagSet.chassisID != "" {
		var err error

		chassisID, err = uuid.Parse(elevationFlagSet.chassisID)
		if err != nil {
			rv.Logger.Fatal("--chassis: " + err.Error())
		}
	}

	var snapshots []*model.RackSnapshot

	if elevationFlagSet.rack != "" {
		snapshot, err := repository.RackSnapshot(ctx, elevationFlagSet.rack)
		if err != nil {
			rv.Logger.Fatal(err)
		}

		snapshots = append(snapshots, snapshot)
	} else {
		rng, err := model.ParseRackRange(elevationFlagSet.rows, elevationFlagSet.nums)
		if err != nil {
			rv.Logger.Fatal(err)
		}

		snapshots, err = store.RackSnapshots(ctx, repository, rng)
		if err != nil {
			rv.Logger.Fatal(err)
		}
	}

	views := make([]model.RackView, 0, len(snapshots))

	for _, snapshot := range snapshots {
		start := time.Now()

		if chassisID != uuid.Nil {
			views = append(views, builder.RackViewWithDetail(snapshot, chassisID, elevationFlagSet.focusSlot))
		} else {
			views = append(views, builder.RackView(snapshot))
		}

		metrics.ObserveLayoutBuild("elevation", start)
	}

	switch elevationFlagSet.format {
	case formatJSON:
		printJSON(views)
	case formatDump:
		spew.Dump(views)
	default:
		for _, view := range views {
			fmt.Println(render.RackView(view))
			fmt.Println()
		}
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(b))
}

func init() {
	cmdElevation.Flags().StringVar(&elevationFlagSet.rack, "rack", "", "rack identifier or name, A1")
	cmdElevation.Flags().StringVar(&elevationFlagSet.rows, "rows", "", "row letter range, A-C")
	cmdElevation.Flags().StringVar(&elevationFlagSet.nums, "nums", "", "rack number range, 1-4")
	cmdElevation.Flags().StringVar(&elevationFlagSet.chassisID, "chassis", "", "chassis identifier to show the slot grid of alongside the rack")
	cmdElevation.Flags().IntVar(&elevationFlagSet.focusSlot, "focus-slot", 0, "chassis slot to focus in the detail view")
	cmdElevation.Flags().StringVar(&elevationFlagSet.format, "format", formatText, "output format - text, json, dump")

	cmdElevation.MarkFlagsMutuallyExclusive("rack", "rows")
	cmdElevation.MarkFlagsMutuallyExclusive("rack", "nums")

	rootCmd.AddCommand(cmdElevation)
}
