package layout

import (
	"github.com/google/uuid"

	"github.com/metal-toolbox/rackview/internal/model"
)

// Ruler returns the unit labels shown alongside an elevation, 1 through height.
func Ruler(height int) []int {
	if height < 1 {
		return []int{}
	}

	units := make([]int, 0, height)
	for u := 1; u <= height; u++ {
		units = append(units, u)
	}

	return units
}

// RackView returns the elevation of the rack in the snapshot along with its title and ruler.
func (b *Builder) RackView(snapshot *model.RackSnapshot) model.RackView {
	return model.RackView{
		Title: "Rack " + snapshot.Rack.Name(),
		Rack:  snapshot.Rack,
		Ruler: Ruler(snapshot.Rack.Height),
		Rows:  b.Elevation(snapshot.Rack, snapshot.Assets),
	}
}

// RackViewWithDetail returns the rack view with the slot grid of the chassis identified
// by chassisID in detail view.
//
// The detail is left empty when no chassis mounted in the rack resolves to chassisID.
func (b *Builder) RackViewWithDetail(snapshot *model.RackSnapshot, chassisID uuid.UUID, focusedSlot int) model.RackView {
	view := b.RackView(snapshot)

	for _, ref := range snapshot.Assets {
		if !ref.Asset().IsChassis() || ResolveIdentity(ref) != chassisID {
			continue
		}

		detail := b.ChassisView(&model.ChassisSnapshot{Chassis: ref.Asset(), ChassisID: chassisID, FocusedSlot: focusedSlot})
		view.Detail = &detail

		break
	}

	return view
}

// ChassisView returns the slot grid of the chassis in the snapshot along with the
// mirrored slot number rows.
func (b *Builder) ChassisView(snapshot *model.ChassisSnapshot) model.ChassisView {
	chassis := snapshot.Chassis

	chassisID := snapshot.ChassisID
	if chassisID == uuid.Nil {
		chassisID = chassis.ID
	}

	return model.ChassisView{
		ChassisID:   chassisID,
		Label:       hostnameLabel(chassis),
		BorderColor: assetColor(chassis),
		Labels:      SlotLabels(snapshot.FocusedSlot),
		Slots:       b.SlotGrid(chassis, snapshot.FocusedSlot),
	}
}

// Navigate returns the navigation event for a selected asset, ok is false for uuid.Nil.
func Navigate(target uuid.UUID) (event model.NavigationEvent, ok bool) {
	if target == uuid.Nil {
		return model.NavigationEvent{}, false
	}

	return model.NavigationEvent{
		TargetAssetID: target,
		Route:         model.AssetRoutePrefix + target.String(),
	}, true
}

// NavigateRow returns the navigation event for a selected elevation row, empty rows
// have no target.
func NavigateRow(row model.UnitRow) (model.NavigationEvent, bool) {
	if !row.Occupied() {
		return model.NavigationEvent{}, false
	}

	return Navigate(row.TargetAssetID)
}

// NavigateSlot returns the navigation event for a selected slot, empty slots have no target.
func NavigateSlot(slot model.Slot) (model.NavigationEvent, bool) {
	if !slot.Occupied {
		return model.NavigationEvent{}, false
	}

	return Navigate(slot.TargetAssetID)
}
