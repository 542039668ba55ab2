package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type StoreKind string

const (
	AppName = "rackview"

	StoreKindYaml         StoreKind = "yaml"
	StoreKindInventoryAPI StoreKind = "inventoryapi"

	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
	LogLevelTrace = "trace"

	// ChassisSlotCount is the number of blade slots in every chassis of the
	// supported hardware family.
	ChassisSlotCount = 14

	// AssetRoutePrefix is prefixed to an asset identifier to build the route
	// the presentation layer navigates to.
	AssetRoutePrefix = "/assets/"
)

// StoreKinds returns the supported inventory snapshot sources.
func StoreKinds() []StoreKind {
	return []StoreKind{StoreKindYaml, StoreKindInventoryAPI}
}

// ModelKind is the mount type of a hardware model.
type ModelKind string

const (
	ModelKindRackmount    ModelKind = "rackmount"
	ModelKindBlade        ModelKind = "blade"
	ModelKindBladeChassis ModelKind = "blade_chassis"
)

// Valid returns true when the kind is one of the known mount types.
func (k ModelKind) Valid() bool {
	switch k {
	case ModelKindRackmount, ModelKindBlade, ModelKindBladeChassis:
		return true
	}

	return false
}

// Model is a hardware model as listed in the inventory.
type Model struct {
	ID           uuid.UUID `yaml:"id" json:"id"`
	Vendor       string    `yaml:"vendor" json:"vendor"`
	ModelNumber  string    `yaml:"model_number" json:"model_number"`
	Height       int       `yaml:"height" json:"height"`
	Kind         ModelKind `yaml:"kind" json:"kind"`
	DisplayColor string    `yaml:"display_color,omitempty" json:"display_color,omitempty"`
}

// Name returns the vendor and model number joined by a space.
func (m Model) Name() string {
	return strings.TrimSpace(m.Vendor + " " + m.ModelNumber)
}

// Rack is a physical rack in a datacenter row.
type Rack struct {
	ID        uuid.UUID `yaml:"id" json:"id"`
	RowLetter string    `yaml:"row_letter" json:"row_letter"`
	RackNum   int       `yaml:"rack_num" json:"rack_num"`
	Height    int       `yaml:"height" json:"height"`
}

// Name returns the rack location, row letter followed by the rack number, A1, B12.
func (r Rack) Name() string {
	return fmt.Sprintf("%s%d", strings.ToUpper(r.RowLetter), r.RackNum)
}
