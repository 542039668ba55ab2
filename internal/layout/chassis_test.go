package layout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/rackview/internal/diagnostics"
	"github.com/metal-toolbox/rackview/internal/model"
)

func bladeIn(slot int, hostname string) model.Asset {
	return model.Asset{ID: uuid.New(), Hostname: hostname, AssetNumber: 100000 + slot, Model: blade, ChassisSlot: slot}
}

func chassisWith(blades ...model.AssetRef) model.Asset {
	c := mountedAt(1, chassis, "chassis1")
	c.Blades = blades

	return c
}

func TestSlotGridFocusedBlade(t *testing.T) {
	rec := diagnostics.NewRecorder()
	b5 := bladeIn(5, "blade5")

	slots := NewBuilder(WithReporter(rec)).SlotGrid(chassisWith(model.Direct(b5)), 5)

	require.Len(t, slots, model.ChassisSlotCount)

	for idx, slot := range slots {
		assert.Equal(t, idx+1, slot.Index)

		if slot.Index == 5 {
			assert.True(t, slot.Occupied)
			assert.True(t, slot.Focused)
			assert.Equal(t, "blade5", slot.Label)
			assert.Equal(t, b5.ID, slot.TargetAssetID)
			assert.Equal(t, blade.DisplayColor, slot.Color)
			assert.Equal(t, "hostname: blade5\n asset number: 100005", slot.Tooltip)
			require.NotNil(t, slot.Blade)
			assert.Equal(t, b5.ID, slot.Blade.Asset().ID)

			continue
		}

		assert.Equal(t, model.Slot{Index: slot.Index}, slot)
	}

	assert.Empty(t, rec.Diagnostics())
}

func TestSlotGridNoBlades(t *testing.T) {
	tests := []struct {
		name    string
		chassis model.Asset
		focus   int
	}{
		{"nil blades", chassisWith(), 0},
		{"empty blades", chassisWith([]model.AssetRef{}...), 0},
		{"focus on empty slot", chassisWith(), 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slots := NewBuilder().SlotGrid(tc.chassis, tc.focus)

			require.Len(t, slots, model.ChassisSlotCount)

			for _, slot := range slots {
				assert.False(t, slot.Occupied)
				assert.Nil(t, slot.Blade)
				assert.Equal(t, tc.focus == slot.Index, slot.Focused)
			}
		})
	}
}

func TestSlotGridDuplicateClaims(t *testing.T) {
	rec := diagnostics.NewRecorder()

	var blades []model.AssetRef
	for i := 0; i < 20; i++ {
		// slots 1-10, twice over
		blades = append(blades, model.Direct(bladeIn(i%10+1, "")))
	}

	c := chassisWith(blades...)
	slots := NewBuilder(WithReporter(rec)).SlotGrid(c, 0)

	require.Len(t, slots, model.ChassisSlotCount)

	for idx := 0; idx < 10; idx++ {
		assert.True(t, slots[idx].Occupied)
		// first claimant wins
		assert.Equal(t, blades[idx].Asset().ID, slots[idx].TargetAssetID)
	}

	for idx := 10; idx < model.ChassisSlotCount; idx++ {
		assert.False(t, slots[idx].Occupied)
	}

	diags := rec.Diagnostics()
	require.Len(t, diags, 10)

	for idx, d := range diags {
		assert.Equal(t, diagnostics.KindDuplicateSlot, d.Kind)
		assert.Equal(t, idx+1, d.Slot)
		assert.Equal(t, c.ID, d.AssetID)
		assert.Contains(t, d.Message, blades[idx+10].Asset().ID.String())
	}
}

func TestSlotGridOutOfRange(t *testing.T) {
	rec := diagnostics.NewRecorder()
	stray := bladeIn(15, "stray")
	unslotted := bladeIn(0, "unslotted")
	seated := bladeIn(14, "seated")

	slots := NewBuilder(WithReporter(rec)).SlotGrid(chassisWith(model.Direct(stray), model.Direct(unslotted), model.Direct(seated)), 0)

	require.Len(t, slots, model.ChassisSlotCount)
	assert.Equal(t, seated.ID, slots[13].TargetAssetID)

	var occupied int
	for _, slot := range slots {
		if slot.Occupied {
			occupied++
		}
	}

	assert.Equal(t, 1, occupied)

	diags := rec.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, diagnostics.KindSlotOutOfRange, diags[0].Kind)
	assert.Equal(t, stray.ID, diags[0].AssetID)
	assert.Equal(t, 15, diags[0].Slot)
	assert.Equal(t, unslotted.ID, diags[1].AssetID)
}

func TestSlotGridProjectedBlade(t *testing.T) {
	realID := uuid.New()
	planned := bladeIn(2, "planned")
	planned.DisplayColor = "#000000"

	slots := NewBuilder().SlotGrid(chassisWith(model.Projection(planned, realID)), 0)

	assert.Equal(t, realID, slots[1].TargetAssetID)
	assert.Equal(t, "#000000", slots[1].Color)
	assert.True(t, slots[1].Blade.IsProjection())
}

func TestSlotGridIdempotent(t *testing.T) {
	c := chassisWith(model.Direct(bladeIn(1, "a")), model.Direct(bladeIn(1, "b")), model.Direct(bladeIn(7, "c")))
	b := NewBuilder()

	assert.Equal(t, b.SlotGrid(c, 7), b.SlotGrid(c, 7))
}

func TestSlotLabels(t *testing.T) {
	labels := SlotLabels(14)

	require.Len(t, labels, model.ChassisSlotCount)

	for idx, label := range labels {
		assert.Equal(t, idx+1, label.Index)
		assert.Equal(t, label.Index == 14, label.Focused)
	}

	for _, label := range SlotLabels(0) {
		assert.False(t, label.Focused)
	}
}
