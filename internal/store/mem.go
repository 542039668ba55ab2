package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/rackview/internal/diagnostics"
	"github.com/metal-toolbox/rackview/internal/model"
)

var (
	ErrRackNotFound  = errors.New("rack not found")
	ErrAssetNotFound = errors.New("asset not found")
	ErrInventoryCopy = errors.New("error copying inventory document")
)

// MemStore is an in memory Repository indexed from an inventory document.
type MemStore struct {
	mu *sync.RWMutex

	models map[uuid.UUID]model.Model
	racks  map[uuid.UUID]model.Rack
	assets map[uuid.UUID]model.AssetRecord

	// rackAssets maps rack IDs to the IDs of the assets mounted in them, blades excluded.
	rackAssets map[uuid.UUID][]uuid.UUID
	// blades maps chassis identities to the IDs of their blades, in document order.
	// Projections of a chassis share the blades of the real chassis.
	blades map[uuid.UUID][]uuid.UUID
}

func NewMemStore() *MemStore {
	return &MemStore{
		mu:         &sync.RWMutex{},
		models:     map[uuid.UUID]model.Model{},
		racks:      map[uuid.UUID]model.Rack{},
		assets:     map[uuid.UUID]model.AssetRecord{},
		rackAssets: map[uuid.UUID][]uuid.UUID{},
		blades:     map[uuid.UUID][]uuid.UUID{},
	}
}

// Load replaces the store contents with the inventory document.
//
// Records that reuse an identifier or refer to an unknown model, rack or chassis are
// skipped and returned as diagnostics in a multierror, the remaining records are
// loaded regardless.
//
// nolint:gocyclo // record validation is cyclomatic
func (s *MemStore) Load(inv *model.Inventory) error {
	if inv == nil {
		return errors.Wrap(ErrInventoryCopy, "nil inventory")
	}

	doc := &model.Inventory{}
	if err := copier.CopyWithOption(doc, inv, copier.Option{DeepCopy: true}); err != nil {
		return errors.Wrap(ErrInventoryCopy, err.Error())
	}

	var skipped *multierror.Error

	skip := func(kind diagnostics.Kind, id uuid.UUID, msg string) {
		skipped = multierror.Append(skipped, diagnostics.Diagnostic{Kind: kind, AssetID: id, Message: msg})
	}

	models := make(map[uuid.UUID]model.Model, len(doc.Models))
	for _, m := range doc.Models {
		if _, exists := models[m.ID]; exists {
			skip(diagnostics.KindDuplicateRecord, m.ID, "duplicate model id")
			continue
		}

		if !m.Kind.Valid() {
			skip(diagnostics.KindDanglingReference, m.ID, "model "+m.Name()+" has unknown kind: "+string(m.Kind))
			continue
		}

		models[m.ID] = m
	}

	racks := make(map[uuid.UUID]model.Rack, len(doc.Racks))
	for _, r := range doc.Racks {
		if _, exists := racks[r.ID]; exists {
			skip(diagnostics.KindDuplicateRecord, r.ID, "duplicate rack id")
			continue
		}

		racks[r.ID] = r
	}

	assets := make(map[uuid.UUID]model.AssetRecord, len(doc.Assets))
	order := make([]uuid.UUID, 0, len(doc.Assets))

	for _, a := range doc.Assets {
		if _, exists := assets[a.ID]; exists {
			skip(diagnostics.KindDuplicateRecord, a.ID, "duplicate asset id")
			continue
		}

		if _, exists := models[a.ModelID]; !exists {
			skip(diagnostics.KindDanglingReference, a.ID, "unknown model "+a.ModelID.String())
			continue
		}

		if a.RackID != nil {
			if _, exists := racks[*a.RackID]; !exists {
				skip(diagnostics.KindDanglingReference, a.ID, "unknown rack "+a.RackID.String())
				continue
			}
		}

		assets[a.ID] = a
		order = append(order, a.ID)
	}

	// chassis records indexed by the identity they resolve to, a chassis present
	// only as a change plan projection is found through its real asset id.
	chassisByIdentity := map[uuid.UUID]model.AssetRecord{}

	for _, id := range order {
		a := assets[id]
		if models[a.ModelID].Kind != model.ModelKindBladeChassis {
			continue
		}

		if _, exists := chassisByIdentity[recordIdentity(a)]; !exists || a.RealAssetID == nil {
			chassisByIdentity[recordIdentity(a)] = a
		}
	}

	rackAssets := map[uuid.UUID][]uuid.UUID{}
	blades := map[uuid.UUID][]uuid.UUID{}

	for _, id := range order {
		a := assets[id]

		if a.ChassisID != nil {
			chassis, exists := assets[*a.ChassisID]
			if !exists {
				chassis, exists = chassisByIdentity[*a.ChassisID]
			}

			if !exists || models[chassis.ModelID].Kind != model.ModelKindBladeChassis {
				skip(diagnostics.KindDanglingReference, a.ID, "unknown chassis "+a.ChassisID.String())
				delete(assets, id)

				continue
			}

			if models[a.ModelID].Kind != model.ModelKindBlade {
				skip(diagnostics.KindDanglingReference, a.ID, "asset seated in chassis "+a.ChassisID.String()+" is not a blade")
				delete(assets, id)

				continue
			}

			chassisID := recordIdentity(chassis)
			blades[chassisID] = append(blades[chassisID], id)

			continue
		}

		if a.RackID != nil {
			rackAssets[*a.RackID] = append(rackAssets[*a.RackID], id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.models = models
	s.racks = racks
	s.assets = assets
	s.rackAssets = rackAssets
	s.blades = blades

	return skipped.ErrorOrNil()
}

// Racks returns the racks within the range ordered by row letter and rack number.
func (s *MemStore) Racks(_ context.Context, rng model.RackRange) ([]model.Rack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	racks := []model.Rack{}

	for _, r := range s.racks {
		if rng.Contains(r) {
			racks = append(racks, r)
		}
	}

	slices.SortFunc(racks, compareRacks)

	return racks, nil
}

// RackSnapshot returns the rack identified by its uuid or name with its mounted assets.
func (s *MemStore) RackSnapshot(_ context.Context, rackKey string) (*model.RackSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rack, exists := s.rackByKey(rackKey)
	if !exists {
		return nil, errors.Wrap(ErrRackNotFound, rackKey)
	}

	snapshot := &model.RackSnapshot{
		Rack:   rack,
		Assets: make([]model.AssetRef, 0, len(s.rackAssets[rack.ID])),
	}

	for _, id := range s.rackAssets[rack.ID] {
		snapshot.Assets = append(snapshot.Assets, s.assetRef(s.assets[id]))
	}

	slices.SortStableFunc(snapshot.Assets, func(a, b model.AssetRef) int {
		return a.Asset().RackPosition - b.Asset().RackPosition
	})

	return snapshot, nil
}

// AssetByID returns a reference to the asset, chassis references include their blades.
func (s *MemStore) AssetByID(_ context.Context, id uuid.UUID) (*model.AssetRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.assets[id]
	if !exists {
		return nil, errors.Wrap(ErrAssetNotFound, id.String())
	}

	ref := s.assetRef(rec)

	return &ref, nil
}

func (s *MemStore) rackByKey(key string) (model.Rack, bool) {
	if id, err := uuid.Parse(key); err == nil {
		rack, exists := s.racks[id]
		return rack, exists
	}

	for _, r := range s.racks {
		if strings.EqualFold(r.Name(), strings.TrimSpace(key)) {
			return r, true
		}
	}

	return model.Rack{}, false
}

// assetRef assembles the asset from its record, callers hold the read lock.
func (s *MemStore) assetRef(rec model.AssetRecord) model.AssetRef {
	a := model.Asset{
		ID:           rec.ID,
		Hostname:     rec.Hostname,
		AssetNumber:  rec.AssetNumber,
		RackPosition: rec.RackPosition,
		Model:        s.models[rec.ModelID],
		DisplayColor: rec.DisplayColor,
		ChassisSlot:  rec.ChassisSlot,
	}

	if rec.ChassisID != nil {
		chassisID := *rec.ChassisID
		a.ChassisID = &chassisID
	}

	// blades are never chassis themselves, Load ensures this does not recurse further
	if a.IsChassis() {
		for _, bladeID := range s.blades[recordIdentity(rec)] {
			a.Blades = append(a.Blades, s.assetRef(s.assets[bladeID]))
		}
	}

	if rec.RealAssetID != nil {
		return model.Projection(a, *rec.RealAssetID)
	}

	return model.Direct(a)
}

// recordIdentity returns the identifier of the inventory asset the record resolves to,
// the real asset for a change plan projection.
func recordIdentity(rec model.AssetRecord) uuid.UUID {
	if rec.RealAssetID != nil && *rec.RealAssetID != uuid.Nil {
		return *rec.RealAssetID
	}

	return rec.ID
}

func compareRacks(a, b model.Rack) int {
	rowA, rowB := strings.ToUpper(a.RowLetter), strings.ToUpper(b.RowLetter)

	switch {
	case rowA < rowB:
		return -1
	case rowA > rowB:
		return 1
	}

	return a.RackNum - b.RackNum
}
