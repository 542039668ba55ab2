package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/metal-toolbox/rackview/internal/model"
)

//go:generate mockgen -source interface.go -destination=../fixtures/mock_repository.go -package=fixtures

// Repository supplies inventory snapshots to the layout builders.
//
// Snapshots returned are owned by the caller, changes to them are never visible to
// the repository or to other callers.
type Repository interface {
	// Racks returns the racks within the range ordered by row letter and rack number.
	Racks(ctx context.Context, rng model.RackRange) ([]model.Rack, error)

	// RackSnapshot returns the rack identified by its uuid or its name, A1, along with
	// its mounted assets sorted ascending by rack position.
	RackSnapshot(ctx context.Context, rackKey string) (*model.RackSnapshot, error)

	// AssetByID returns a reference to the asset, chassis references include their blades.
	AssetByID(ctx context.Context, id uuid.UUID) (*model.AssetRef, error)
}
