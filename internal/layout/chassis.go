package layout

import (
	"fmt"
	"strings"

	"github.com/metal-toolbox/rackview/internal/diagnostics"
	"github.com/metal-toolbox/rackview/internal/model"
)

// SlotGrid returns the model.ChassisSlotCount slot descriptors of the chassis.
//
// A slot claimed by more than one blade shows the first claimant and a diagnostic is
// reported, blades with a slot outside the chassis range are never shown and
// reported as well. focusedSlot is zero when no slot is focused, the focus applies to
// empty slots too.
func (b *Builder) SlotGrid(chassis model.Asset, focusedSlot int) []model.Slot {
	b.checkSlotRange(chassis)

	slots := make([]model.Slot, 0, model.ChassisSlotCount)

	for idx := 1; idx <= model.ChassisSlotCount; idx++ {
		slot := model.Slot{Index: idx, Focused: focusedSlot == idx}

		claims := bladesInSlot(chassis.Blades, idx)
		if len(claims) == 0 {
			slots = append(slots, slot)
			continue
		}

		if len(claims) > 1 {
			b.reportDuplicateSlot(chassis, idx, claims)
		}

		blade := claims[0]
		a := blade.Asset()

		slot.Occupied = true
		slot.Blade = &blade
		slot.Label = a.Hostname
		slot.Tooltip = fmt.Sprintf("hostname: %s\n asset number: %s", a.Hostname, assetNumberLabel(a))
		slot.Color = ResolveColor(blade)
		slot.TargetAssetID = ResolveIdentity(blade)

		slots = append(slots, slot)
	}

	return slots
}

// SlotLabels returns the slot numbers shown above and below the slot grid.
func SlotLabels(focusedSlot int) []model.SlotLabel {
	labels := make([]model.SlotLabel, 0, model.ChassisSlotCount)

	for idx := 1; idx <= model.ChassisSlotCount; idx++ {
		labels = append(labels, model.SlotLabel{Index: idx, Focused: focusedSlot == idx})
	}

	return labels
}

func bladesInSlot(blades []model.AssetRef, idx int) []model.AssetRef {
	var claims []model.AssetRef

	for _, blade := range blades {
		if blade.Asset().ChassisSlot == idx {
			claims = append(claims, blade)
		}
	}

	return claims
}

func (b *Builder) checkSlotRange(chassis model.Asset) {
	for _, blade := range chassis.Blades {
		slot := blade.Asset().ChassisSlot
		if slot >= 1 && slot <= model.ChassisSlotCount {
			continue
		}

		b.report(diagnostics.Diagnostic{
			Kind:    diagnostics.KindSlotOutOfRange,
			AssetID: ResolveIdentity(blade),
			Slot:    slot,
			Message: fmt.Sprintf("blade slot is outside 1-%d in chassis %s", model.ChassisSlotCount, chassis.ID),
		})
	}
}

func (b *Builder) reportDuplicateSlot(chassis model.Asset, idx int, claims []model.AssetRef) {
	ids := make([]string, 0, len(claims))
	for _, c := range claims {
		ids = append(ids, ResolveIdentity(c).String())
	}

	b.report(diagnostics.Diagnostic{
		Kind:    diagnostics.KindDuplicateSlot,
		AssetID: chassis.ID,
		Slot:    idx,
		Message: "slot claimed by blades " + strings.Join(ids, ", ") + ", showing the first",
	})
}
