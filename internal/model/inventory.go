package model

import (
	"github.com/google/uuid"
)

// Inventory is the flat inventory document the snapshot stores are loaded from.
type Inventory struct {
	Models []Model       `yaml:"models" json:"models"`
	Racks  []Rack        `yaml:"racks" json:"racks"`
	Assets []AssetRecord `yaml:"assets" json:"assets"`
}

// AssetRecord is an asset as listed in the inventory document, references to the
// rack, model and chassis are by identifier.
//
// A record with RealAssetID set is a change plan projection of that asset.
//
// nolint:govet // fieldalignment struct is easier to read in the current format
type AssetRecord struct {
	ID           uuid.UUID  `yaml:"id" json:"id"`
	Hostname     string     `yaml:"hostname,omitempty" json:"hostname,omitempty"`
	AssetNumber  int        `yaml:"asset_number,omitempty" json:"asset_number,omitempty"`
	ModelID      uuid.UUID  `yaml:"model_id" json:"model_id"`
	RackID       *uuid.UUID `yaml:"rack_id,omitempty" json:"rack_id,omitempty"`
	RackPosition int        `yaml:"rack_position,omitempty" json:"rack_position,omitempty"`
	DisplayColor string     `yaml:"display_color,omitempty" json:"display_color,omitempty"`
	ChassisID    *uuid.UUID `yaml:"chassis_id,omitempty" json:"chassis_id,omitempty"`
	ChassisSlot  int        `yaml:"chassis_slot,omitempty" json:"chassis_slot,omitempty"`
	RealAssetID  *uuid.UUID `yaml:"real_asset_id,omitempty" json:"real_asset_id,omitempty"`
}
