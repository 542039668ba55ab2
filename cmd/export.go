package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metal-toolbox/rackview/internal/model"
	"github.com/metal-toolbox/rackview/internal/render"
	"github.com/metal-toolbox/rackview/internal/store"
)

type exportFlags struct {
	rack    string
	rows    string
	nums    string
	dot     bool
	mermaid bool
}

var (
	exportFlagSet = &exportFlags{}
)

var cmdExportGraph = &cobra.Command{
	Use:   "export-graph --rack <id|name> | --rows A-C --nums 1-4 [--dot|--mermaid]",
	Short: "Export the rack, asset and blade topology as a graph",
	Run: func(cmd *cobra.Command, _ []string) {
		exportGraph(cmd.Context())
	},
}

func exportGraph(ctx context.Context) {
	rv, repository := newApp(ctx)

	var snapshots []*model.RackSnapshot

	if exportFlagSet.rack != "" {
		snapshot, err := repository.RackSnapshot(ctx, exportFlagSet.rack)
		if err != nil {
			rv.Logger.Fatal(err)
		}

		snapshots = append(snapshots, snapshot)
	} else {
		rng, err := model.ParseRackRange(exportFlagSet.rows, exportFlagSet.nums)
		if err != nil {
			rv.Logger.Fatal(err)
		}

		snapshots, err = store.RackSnapshots(ctx, repository, rng)
		if err != nil {
			rv.Logger.Fatal(err)
		}
	}

	g := render.Topology(snapshots)

	if exportFlagSet.dot {
		fmt.Println(g.String())
		return
	}

	fmt.Println(render.Mermaid(g))
}

func init() {
	cmdExportGraph.PersistentFlags().StringVar(&exportFlagSet.rack, "rack", "", "rack identifier or name, A1")
	cmdExportGraph.PersistentFlags().StringVar(&exportFlagSet.rows, "rows", "", "row letter range, A-C")
	cmdExportGraph.PersistentFlags().StringVar(&exportFlagSet.nums, "nums", "", "rack number range, 1-4")
	cmdExportGraph.PersistentFlags().BoolVarP(&exportFlagSet.mermaid, "mermaid", "", true, "export the graph in mermaid format")
	cmdExportGraph.PersistentFlags().BoolVarP(&exportFlagSet.dot, "dot", "", false, "export the graph in graphviz dot format")

	rootCmd.AddCommand(cmdExportGraph)
}
