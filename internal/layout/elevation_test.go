package layout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/rackview/internal/diagnostics"
	"github.com/metal-toolbox/rackview/internal/model"
)

var (
	server1U = model.Model{ID: uuid.New(), Vendor: "dell", ModelNumber: "r640", Height: 1, Kind: model.ModelKindRackmount, DisplayColor: "#2965CC"}
	server2U = model.Model{ID: uuid.New(), Vendor: "dell", ModelNumber: "r740", Height: 2, Kind: model.ModelKindRackmount, DisplayColor: "#29A634"}
	chassis  = model.Model{ID: uuid.New(), Vendor: "dell", ModelNumber: "m1000e", Height: 10, Kind: model.ModelKindBladeChassis, DisplayColor: "#D99E0B"}
	blade    = model.Model{ID: uuid.New(), Vendor: "dell", ModelNumber: "m630", Height: 1, Kind: model.ModelKindBlade, DisplayColor: "#8F398F"}
)

func mountedAt(position int, m model.Model, hostname string) model.Asset {
	return model.Asset{ID: uuid.New(), Hostname: hostname, RackPosition: position, Model: m}
}

func refs(assets ...model.Asset) []model.AssetRef {
	out := make([]model.AssetRef, 0, len(assets))
	for _, a := range assets {
		out = append(out, model.Direct(a))
	}

	return out
}

func rackOf(height int) model.Rack {
	return model.Rack{ID: uuid.New(), RowLetter: "A", RackNum: 1, Height: height}
}

func TestElevationEmptyRack(t *testing.T) {
	rec := diagnostics.NewRecorder()
	b := NewBuilder(WithReporter(rec))

	rows := b.Elevation(rackOf(42), nil)

	require.Len(t, rows, 42)
	for idx, row := range rows {
		assert.Equal(t, model.EmptyRow(idx+1), row)
	}

	assert.Empty(t, rec.Diagnostics())
}

func TestElevationSingleAsset(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		position int
		m        model.Model
	}{
		{"bottom unit", 42, 1, server1U},
		{"top unit", 42, 42, server1U},
		{"2U at the top", 42, 41, server2U},
		{"middle", 10, 4, chassis},
		{"fills rack", 10, 1, chassis},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := diagnostics.NewRecorder()
			asset := mountedAt(tc.position, tc.m, "host1")

			rows := NewBuilder(WithReporter(rec)).Elevation(rackOf(tc.height), refs(asset))

			emptyBelow := tc.position - 1
			emptyAbove := tc.height - (tc.position - 1 + tc.m.Height)

			require.Len(t, rows, emptyBelow+1+emptyAbove)
			assert.Equal(t, tc.height, rows.Units())

			for idx := 0; idx < emptyBelow; idx++ {
				assert.Equal(t, model.EmptyRow(idx+1), rows[idx])
			}

			occupied := rows[emptyBelow]
			assert.True(t, occupied.Occupied())
			assert.Equal(t, tc.position, occupied.Unit)
			assert.Equal(t, tc.m.Height, occupied.Height)
			assert.Equal(t, asset.ID, occupied.TargetAssetID)
			assert.Equal(t, tc.m.DisplayColor, occupied.Color)

			for idx := emptyBelow + 1; idx < len(rows); idx++ {
				assert.False(t, rows[idx].Occupied())
			}

			assert.Empty(t, rec.Diagnostics())
		})
	}
}

func TestElevationExample(t *testing.T) {
	asset := mountedAt(2, server2U, "web01")

	rows := NewBuilder().Elevation(rackOf(4), refs(asset))

	want := model.Elevation{
		model.EmptyRow(1),
		{
			Kind:          model.RowOccupied,
			Unit:          2,
			Height:        2,
			Label:         "web01",
			Color:         server2U.DisplayColor,
			TargetAssetID: asset.ID,
		},
		model.EmptyRow(4),
	}

	assert.Equal(t, want, rows)
}

func TestElevationGapFilling(t *testing.T) {
	lower := mountedAt(3, server2U, "db01")
	upper := mountedAt(8, server1U, "web01")

	rows := NewBuilder().Elevation(rackOf(10), refs(lower, upper))

	var got []string
	for _, row := range rows {
		if row.Occupied() {
			got = append(got, row.Label)
			continue
		}

		got = append(got, "-")
	}

	// units 1,2 empty, 3-4 db01, 5,6,7 empty, 8 web01, 9,10 empty
	assert.Equal(t, []string{"-", "-", "db01", "-", "-", "-", "web01", "-", "-"}, got)
	assert.Equal(t, 10, rows.Units())
	assert.Equal(t, 3, rows[2].Unit)
	assert.Equal(t, 8, rows[6].Unit)
}

func TestElevationAdjacentAssets(t *testing.T) {
	assets := refs(
		mountedAt(1, server2U, "a"),
		mountedAt(3, server2U, "b"),
		mountedAt(5, server1U, "c"),
	)

	rows := NewBuilder().Elevation(rackOf(5), assets)

	require.Len(t, rows, 3)
	assert.Equal(t, 5, rows.Units())
	assert.Equal(t, "a", rows[0].Label)
	assert.Equal(t, "b", rows[1].Label)
	assert.Equal(t, "c", rows[2].Label)
}

func TestElevationOverflow(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		assets   []model.AssetRef
		occupied int
		kinds    []diagnostics.Kind
	}{
		{
			"asset at the top unit overflows",
			4,
			refs(mountedAt(4, server2U, "big")),
			0,
			[]diagnostics.Kind{diagnostics.KindFootprintOverflow},
		},
		{
			"chassis taller than the rack",
			6,
			refs(mountedAt(1, chassis, "c1")),
			0,
			[]diagnostics.Kind{diagnostics.KindFootprintOverflow},
		},
		{
			"asset below the overflow is kept",
			6,
			refs(mountedAt(1, server1U, "ok"), mountedAt(5, server2U, "ok2"), mountedAt(6, server2U, "big")),
			2,
			[]diagnostics.Kind{diagnostics.KindFootprintOverflow},
		},
		{
			"assets behind an overflow are dropped",
			6,
			refs(mountedAt(5, chassis, "big"), mountedAt(6, server1U, "blocked")),
			0,
			[]diagnostics.Kind{diagnostics.KindFootprintOverflow, diagnostics.KindOverlap},
		},
		{
			"position beyond the rack",
			4,
			refs(mountedAt(9, server1U, "far")),
			0,
			[]diagnostics.Kind{diagnostics.KindFootprintOverflow},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := diagnostics.NewRecorder()

			rows := NewBuilder(WithReporter(rec)).Elevation(rackOf(tc.height), tc.assets)

			assert.Equal(t, tc.height, rows.Units())

			var occupied int
			for _, row := range rows {
				if row.Occupied() {
					occupied++
				}
			}

			assert.Equal(t, tc.occupied, occupied)
			assert.Equal(t, tc.kinds, rec.Kinds())
		})
	}
}

func TestElevationOverlap(t *testing.T) {
	rec := diagnostics.NewRecorder()
	first := mountedAt(2, chassis, "c1")
	overlapping := mountedAt(5, server1U, "inside")

	rows := NewBuilder(WithReporter(rec)).Elevation(rackOf(20), refs(first, overlapping))

	assert.Equal(t, 20, rows.Units())
	require.Len(t, rows, 11)
	assert.Equal(t, first.ID, rows[1].TargetAssetID)

	diags := rec.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.KindOverlap, diags[0].Kind)
	assert.Equal(t, overlapping.ID, diags[0].AssetID)
	assert.Equal(t, "A1", diags[0].Rack)
}

func TestElevationInvalidInput(t *testing.T) {
	t.Run("zero height model", func(t *testing.T) {
		rec := diagnostics.NewRecorder()
		flat := model.Model{ID: uuid.New(), Height: 0, Kind: model.ModelKindRackmount}

		rows := NewBuilder(WithReporter(rec)).Elevation(rackOf(3), refs(mountedAt(2, flat, "flat")))

		assert.Equal(t, model.Elevation{model.EmptyRow(1), model.EmptyRow(2), model.EmptyRow(3)}, rows)
		assert.Equal(t, []diagnostics.Kind{diagnostics.KindInvalidHeight}, rec.Kinds())
	})

	t.Run("unmounted asset", func(t *testing.T) {
		rec := diagnostics.NewRecorder()
		loose := mountedAt(0, server1U, "loose")
		placed := mountedAt(2, server1U, "placed")

		rows := NewBuilder(WithReporter(rec)).Elevation(rackOf(3), refs(loose, placed))

		require.Len(t, rows, 3)
		assert.Equal(t, placed.ID, rows[1].TargetAssetID)
		assert.Equal(t, []diagnostics.Kind{diagnostics.KindUnmounted}, rec.Kinds())
	})

	t.Run("zero height rack", func(t *testing.T) {
		rec := diagnostics.NewRecorder()

		rows := NewBuilder(WithReporter(rec)).Elevation(rackOf(0), refs(mountedAt(1, server1U, "a")))

		assert.Empty(t, rows)
		assert.Equal(t, []diagnostics.Kind{diagnostics.KindInvalidRackHeight}, rec.Kinds())
	})
}

func TestElevationChassisLabel(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		blades   int
		want     string
	}{
		{"no blades", "chassis1", 0, "chassis1 | 0 blades | dell m1000e"},
		{"one blade", "chassis1", 1, "chassis1 | 1 blade | dell m1000e"},
		{"many blades", "chassis1", 3, "chassis1 | 3 blades | dell m1000e"},
		{"no hostname", "", 2, "  | 2 blades | dell m1000e"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := mountedAt(1, chassis, tc.hostname)
			for i := 0; i < tc.blades; i++ {
				c.Blades = append(c.Blades, model.Direct(model.Asset{ID: uuid.New(), Model: blade, ChassisSlot: i + 1}))
			}

			rows := NewBuilder().Elevation(rackOf(10), refs(c))

			require.Len(t, rows, 1)
			assert.Equal(t, tc.want, rows[0].Label)
		})
	}
}

func TestElevationBlankHostname(t *testing.T) {
	rows := NewBuilder().Elevation(rackOf(1), refs(mountedAt(1, server1U, "")))

	require.Len(t, rows, 1)
	assert.Equal(t, " ", rows[0].Label)
}

func TestElevationProjection(t *testing.T) {
	realID := uuid.New()
	projected := mountedAt(1, server1U, "planned")
	projected.DisplayColor = "#FF0000"

	rows := NewBuilder().Elevation(rackOf(2), []model.AssetRef{model.Projection(projected, realID)})

	require.Len(t, rows, 2)
	assert.Equal(t, realID, rows[0].TargetAssetID)
	assert.Equal(t, "#FF0000", rows[0].Color)
}

func TestElevationDoesNotModifyInput(t *testing.T) {
	assets := refs(mountedAt(0, server1U, "loose"), mountedAt(1, server2U, "a"), mountedAt(2, server1U, "overlap"))
	before := append([]model.AssetRef(nil), assets...)

	b := NewBuilder()
	first := b.Elevation(rackOf(6), assets)
	second := b.Elevation(rackOf(6), assets)

	assert.Equal(t, before, assets)
	assert.Equal(t, first, second)
}

func TestElevationWeightsSumToHeight(t *testing.T) {
	models := []model.Model{server1U, server2U, chassis}

	for height := 1; height <= 48; height += 7 {
		var assets []model.AssetRef

		// pack assets bottom up, leaving a gap of one unit after each
		for pos, i := 1, 0; ; i++ {
			m := models[i%len(models)]
			if pos+m.Height-1 > height {
				break
			}

			assets = append(assets, model.Direct(mountedAt(pos, m, "")))
			pos += m.Height + 1
		}

		rows := NewBuilder().Elevation(rackOf(height), assets)
		assert.Equal(t, height, rows.Units(), "height %d", height)
	}
}
