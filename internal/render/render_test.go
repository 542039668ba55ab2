package render

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/model"
)

var (
	rackA1 = model.Rack{ID: uuid.New(), RowLetter: "A", RackNum: 1, Height: 6}

	server       = model.Model{Vendor: "dell", ModelNumber: "r750", Height: 2, Kind: model.ModelKindRackmount}
	blade        = model.Model{Vendor: "supermicro", ModelNumber: "SBI-611", Height: 1, Kind: model.ModelKindBlade}
	chassisModel = model.Model{Vendor: "supermicro", ModelNumber: "SBE-814", Height: 3, Kind: model.ModelKindBladeChassis}
)

func testSnapshot() *model.RackSnapshot {
	chassisID := uuid.New()

	chassis := model.Asset{ID: chassisID, Hostname: "chassis01", RackPosition: 4, Model: chassisModel}
	chassis.Blades = []model.AssetRef{
		model.Direct(model.Asset{ID: uuid.New(), Hostname: "blade03", AssetNumber: 203, Model: blade, ChassisID: &chassisID, ChassisSlot: 3}),
	}

	return &model.RackSnapshot{
		Rack: rackA1,
		Assets: []model.AssetRef{
			model.Direct(model.Asset{ID: uuid.New(), Hostname: "db01", RackPosition: 1, Model: server}),
			model.Direct(chassis),
		},
	}
}

func TestRackView(t *testing.T) {
	view := layout.NewBuilder().RackView(testSnapshot())

	got := RackView(view)
	lines := strings.Split(got, "\n")

	// title followed by one line per unit, top unit first
	require.Len(t, lines, rackA1.Height+1)
	assert.Contains(t, lines[0], "Rack A1")
	assert.True(t, strings.HasPrefix(lines[1], "6 │"))
	assert.True(t, strings.HasSuffix(lines[1], "│ 6"))
	assert.True(t, strings.HasPrefix(lines[6], "1 │"))

	// labels are drawn on the top unit of an asset
	assert.Contains(t, lines[1], "chassis01 | 1 blade | supermicro SB…")
	assert.Contains(t, lines[5], "db01")
	assert.NotContains(t, lines[6], "db01")

	// U3 is empty
	assert.Contains(t, lines[4], emptyCell)
}

func TestRackViewWithDetail(t *testing.T) {
	snapshot := testSnapshot()
	view := layout.NewBuilder().RackViewWithDetail(snapshot, snapshot.Assets[1].Asset().ID, 3)
	require.NotNil(t, view.Detail)

	got := RackView(view)
	assert.Contains(t, got, "Rack A1")
	assert.Contains(t, got, "chassis01")
	assert.Contains(t, got, "hostname: blade03, asset number: 203")
}

func TestRackViewWithoutUnits(t *testing.T) {
	got := RackView(layout.NewBuilder().RackView(&model.RackSnapshot{Rack: model.Rack{RowLetter: "B", RackNum: 2}}))
	assert.Equal(t, "Rack B2\n(no units)", got)
}

func TestChassisView(t *testing.T) {
	snapshot := testSnapshot()
	view := layout.NewBuilder().ChassisView(&model.ChassisSnapshot{Chassis: snapshot.Assets[1].Asset(), FocusedSlot: 3})

	got := ChassisView(view)
	lines := strings.Split(got, "\n")

	assert.Equal(t, "chassis01", lines[0])
	// slot numbers are mirrored above and below the grid
	assert.Contains(t, lines[2], "14")
	assert.Equal(t, lines[2], lines[4])
	assert.Contains(t, lines[3], bladeCell)
	assert.Equal(t, 1, strings.Count(lines[3], bladeCell))
	assert.Equal(t, " 3  hostname: blade03, asset number: 203", lines[len(lines)-1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
}

func TestTopology(t *testing.T) {
	snapshot := testSnapshot()

	realID := uuid.New()
	snapshot.Assets = append(snapshot.Assets, model.Projection(
		model.Asset{ID: uuid.New(), Hostname: "app01", RackPosition: 6, Model: model.Model{Height: 1}},
		realID,
	))

	g := Topology([]*model.RackSnapshot{snapshot})

	// rack, db01, chassis01, blade03, app01
	assert.Len(t, g.FindNodes(), 5)

	_, found := g.FindNodeById(realID.String())
	assert.True(t, found)

	mermaid := Mermaid(g)
	assert.Contains(t, mermaid, "Rack A1")
	assert.Contains(t, mermaid, "U6 projected")
	assert.Contains(t, mermaid, "slot 3")
}
