package model

import (
	"github.com/google/uuid"
)

// Asset holds the attributes of an equipment record supplied by the inventory.
//
// A zero RackPosition means the asset is not rack mounted, a zero ChassisSlot means
// the asset is not seated in a chassis.
//
// nolint:govet // fieldalignment struct is easier to read in the current format
type Asset struct {
	ID          uuid.UUID
	Hostname    string
	AssetNumber int

	// RackPosition is the 1-indexed bottom unit the asset is mounted at.
	RackPosition int

	Model Model

	// DisplayColor overrides the model display color when set.
	DisplayColor string

	// Blade attributes
	ChassisID   *uuid.UUID
	ChassisSlot int

	// Blades seated in this asset when it is a chassis.
	Blades []AssetRef
}

// Mounted returns true when the asset occupies units in a rack.
func (a Asset) Mounted() bool {
	return a.RackPosition >= 1
}

// IsChassis returns true when the asset model is a blade chassis.
func (a Asset) IsChassis() bool {
	return a.Model.Kind == ModelKindBladeChassis
}

// IsBlade returns true when the asset model is a blade.
func (a Asset) IsBlade() bool {
	return a.Model.Kind == ModelKindBlade
}

// RefKind identifies the AssetRef variant.
type RefKind string

const (
	RefDirect     RefKind = "direct"
	RefProjection RefKind = "projection"
)

// AssetRef refers to an asset either directly, or as a projection of a real asset
// under a change plan.
//
// Identity and navigation always resolve to the real asset, the projected asset
// attributes are only used for display.
type AssetRef struct {
	asset  Asset
	realID uuid.UUID
	kind   RefKind
}

// Direct returns a reference to the asset as it exists in the inventory.
func Direct(a Asset) AssetRef {
	return AssetRef{asset: a, kind: RefDirect}
}

// Projection returns a reference to the asset as it would be under a change plan,
// realID is the identifier of the underlying inventory asset.
func Projection(a Asset, realID uuid.UUID) AssetRef {
	return AssetRef{asset: a, realID: realID, kind: RefProjection}
}

// Asset returns the referenced asset attributes.
func (r AssetRef) Asset() Asset {
	return r.asset
}

// Kind returns the reference variant, a zero value AssetRef is a direct reference.
func (r AssetRef) Kind() RefKind {
	if r.kind == "" {
		return RefDirect
	}

	return r.kind
}

// IsProjection returns true for change plan projections.
func (r AssetRef) IsProjection() bool {
	return r.kind == RefProjection
}

// RealAssetID returns the identifier of the underlying inventory asset for a projection.
func (r AssetRef) RealAssetID() uuid.UUID {
	return r.realID
}
