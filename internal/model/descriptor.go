package model

import (
	"github.com/google/uuid"
)

// RowKind identifies a unit row descriptor variant.
type RowKind string

const (
	RowEmpty    RowKind = "empty"
	RowOccupied RowKind = "occupied"
)

// UnitRow describes one row of a rack elevation.
//
// An empty row covers a single unit, an occupied row covers Height units starting
// at Unit and collapses the asset footprint into one row.
type UnitRow struct {
	Kind RowKind `json:"kind"`
	// Unit is the 1-indexed bottom unit covered by the row.
	Unit          int       `json:"unit"`
	Height        int       `json:"height"`
	Label         string    `json:"label,omitempty"`
	Color         string    `json:"color,omitempty"`
	TargetAssetID uuid.UUID `json:"target_asset_id"`
}

// EmptyRow returns the descriptor for an unoccupied unit.
func EmptyRow(unit int) UnitRow {
	return UnitRow{Kind: RowEmpty, Unit: unit, Height: 1}
}

// Occupied returns true when an asset occupies the row.
func (r UnitRow) Occupied() bool {
	return r.Kind == RowOccupied
}

// Weight returns the number of rack units the row covers.
func (r UnitRow) Weight() int {
	if r.Kind == RowOccupied {
		return r.Height
	}

	return 1
}

// Elevation is the ordered set of unit rows of a rack, bottom unit first.
type Elevation []UnitRow

// Units returns the sum of the row weights.
func (e Elevation) Units() int {
	var units int
	for _, row := range e {
		units += row.Weight()
	}

	return units
}

// Slot describes one blade slot of a chassis.
type Slot struct {
	Index         int       `json:"index"`
	Occupied      bool      `json:"occupied"`
	Label         string    `json:"label,omitempty"`
	Tooltip       string    `json:"tooltip,omitempty"`
	Color         string    `json:"color,omitempty"`
	TargetAssetID uuid.UUID `json:"target_asset_id"`
	Focused       bool      `json:"focused"`

	// Blade is the reference to the occupying blade.
	Blade *AssetRef `json:"-"`
}

// SlotLabel is a slot number rendered above and below the slot grid.
type SlotLabel struct {
	Index   int  `json:"index"`
	Focused bool `json:"focused"`
}

// NavigationEvent is emitted when a row or slot is selected.
type NavigationEvent struct {
	TargetAssetID uuid.UUID `json:"target_asset_id"`
	Route         string    `json:"route"`
}

// RackView is a rack elevation along with its header and unit rulers.
type RackView struct {
	Title string    `json:"title"`
	Rack  Rack      `json:"rack"`
	Ruler []int     `json:"ruler"`
	Rows  Elevation `json:"rows"`

	// Detail is the slot grid of a chassis in this rack shown in detail view.
	Detail *ChassisView `json:"detail,omitempty"`
}

// ChassisView is a chassis slot grid with the mirrored slot number rows.
type ChassisView struct {
	ChassisID   uuid.UUID   `json:"chassis_id"`
	Label       string      `json:"label"`
	BorderColor string      `json:"border_color"`
	Labels      []SlotLabel `json:"labels"`
	Slots       []Slot      `json:"slots"`
}
