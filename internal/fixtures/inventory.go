package fixtures

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/metal-toolbox/rackview/internal/model"
)

var (
	ModelServer1UID = uuid.MustParse("8d2bd7a4-6f1b-4b9e-9f5c-1a0f3c8e0101")
	ModelServer2UID = uuid.MustParse("8d2bd7a4-6f1b-4b9e-9f5c-1a0f3c8e0102")
	ModelChassisID  = uuid.MustParse("8d2bd7a4-6f1b-4b9e-9f5c-1a0f3c8e0103")
	ModelBladeID    = uuid.MustParse("8d2bd7a4-6f1b-4b9e-9f5c-1a0f3c8e0104")

	RackA1ID = uuid.MustParse("3f6c1e2a-9a77-4d1c-8b1e-5d2a7c9e0a01")
	RackB2ID = uuid.MustParse("3f6c1e2a-9a77-4d1c-8b1e-5d2a7c9e0b02")

	// Rack A1 assets
	Server1ID    = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000001")
	Server2ID    = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000002")
	ChassisID    = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000003")
	Blade1ID     = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000004")
	Blade5ID     = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000005")
	ProjectionID = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000006")

	// Rack B2 assets, Server3 is projected into rack A1 by ProjectionID
	Server3ID = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000007")

	// Spare is not rack mounted
	SpareID = uuid.MustParse("c0a8e1f2-1b2c-4d3e-8f40-000000000008")

	Models = []model.Model{
		{ID: ModelServer1UID, Vendor: "dell", ModelNumber: "r6515", Height: 1, Kind: model.ModelKindRackmount, DisplayColor: "#2E86AB"},
		{ID: ModelServer2UID, Vendor: "dell", ModelNumber: "r750", Height: 2, Kind: model.ModelKindRackmount},
		{ID: ModelChassisID, Vendor: "supermicro", ModelNumber: "SBE-814", Height: 10, Kind: model.ModelKindBladeChassis, DisplayColor: "#A23B72"},
		{ID: ModelBladeID, Vendor: "supermicro", ModelNumber: "SBI-611", Height: 1, Kind: model.ModelKindBlade},
	}

	Racks = []model.Rack{
		{ID: RackA1ID, RowLetter: "A", RackNum: 1, Height: 42},
		{ID: RackB2ID, RowLetter: "B", RackNum: 2, Height: 24},
	}

	// AssetRecords are listed out of rack position order.
	AssetRecords = []model.AssetRecord{
		{ID: ChassisID, Hostname: "chassis01", AssetNumber: 1003, ModelID: ModelChassisID, RackID: &RackA1ID, RackPosition: 10},
		{ID: Server2ID, Hostname: "db01", AssetNumber: 1002, ModelID: ModelServer2UID, RackID: &RackA1ID, RackPosition: 2, DisplayColor: "#F18F01"},
		{ID: Server1ID, Hostname: "web01", AssetNumber: 1001, ModelID: ModelServer1UID, RackID: &RackA1ID, RackPosition: 1},
		{ID: Blade5ID, Hostname: "blade05", AssetNumber: 1005, ModelID: ModelBladeID, RackID: &RackA1ID, ChassisID: &ChassisID, ChassisSlot: 5},
		{ID: Blade1ID, Hostname: "blade01", AssetNumber: 1004, ModelID: ModelBladeID, RackID: &RackA1ID, ChassisID: &ChassisID, ChassisSlot: 1},
		{ID: ProjectionID, Hostname: "app01", AssetNumber: 1007, ModelID: ModelServer2UID, RackID: &RackA1ID, RackPosition: 30, RealAssetID: &Server3ID},
		{ID: Server3ID, Hostname: "app01", AssetNumber: 1007, ModelID: ModelServer2UID, RackID: &RackB2ID, RackPosition: 5},
		{ID: SpareID, Hostname: "spare01", AssetNumber: 1008, ModelID: ModelServer1UID},
	}
)

// RackA1Rows is the number of elevation rows of rack A1 built from the fixture inventory.
//
// web01, db01, 6 empty, chassis01, 10 empty, app01 projection, 11 empty.
const RackA1Rows = 31

func copyInventory(src *model.Inventory) *model.Inventory {
	dst := &model.Inventory{}

	copyOptions := copier.Option{IgnoreEmpty: true, DeepCopy: true}

	err := copier.CopyWithOption(dst, src, copyOptions)
	if err != nil {
		panic(err)
	}

	return dst
}

// NewInventory returns a copy of the fixture inventory document, safe to modify.
func NewInventory() *model.Inventory {
	return copyInventory(&model.Inventory{Models: Models, Racks: Racks, Assets: AssetRecords})
}
