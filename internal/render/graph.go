package render

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/model"
)

// Topology returns a directed graph of the racks, the assets mounted in them and the
// blades seated in each chassis.
//
// Nodes are keyed by the identifier the asset resolves to, a projection and the asset
// it projects share a node.
func Topology(snapshots []*model.RackSnapshot) *dot.Graph {
	g := dot.NewGraph(dot.Directed)

	for _, snapshot := range snapshots {
		rack := g.Node(snapshot.Rack.ID.String()).Label("Rack " + snapshot.Rack.Name())

		for _, ref := range snapshot.Assets {
			a := ref.Asset()
			node := assetNode(g, ref)

			edgeLabel := fmt.Sprintf("U%d", a.RackPosition)
			if ref.IsProjection() {
				edgeLabel += " projected"
			}

			g.Edge(rack, node, edgeLabel)

			for _, blade := range a.Blades {
				g.Edge(node, assetNode(g, blade), fmt.Sprintf("slot %d", blade.Asset().ChassisSlot))
			}
		}
	}

	return g
}

func assetNode(g *dot.Graph, ref model.AssetRef) dot.Node {
	a := ref.Asset()

	label := a.Hostname
	if label == "" {
		label = a.Model.Name()
	}

	return g.Node(layout.ResolveIdentity(ref).String()).Label(label)
}

// Mermaid returns the graph as a top down mermaid flowchart.
func Mermaid(g *dot.Graph) string {
	return dot.MermaidGraph(g, dot.MermaidTopDown)
}
