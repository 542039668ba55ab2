package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/model"
)

var (
	ErrNotChassis = errors.New("asset is not a blade chassis")
)

// ChassisSnapshot returns the snapshot of the chassis identified by id.
//
// When id identifies a blade the snapshot is of the chassis it is seated in, with the
// blade slot focused. Otherwise focusedSlot is the focused slot, zero for none.
func ChassisSnapshot(ctx context.Context, repo Repository, id uuid.UUID, focusedSlot int) (*model.ChassisSnapshot, error) {
	ref, err := repo.AssetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	asset := ref.Asset()

	if asset.IsBlade() && asset.ChassisID != nil {
		chassis, err := repo.AssetByID(ctx, *asset.ChassisID)
		if err != nil {
			return nil, err
		}

		if !chassis.Asset().IsChassis() {
			return nil, errors.Wrap(ErrNotChassis, chassis.Asset().ID.String())
		}

		return &model.ChassisSnapshot{
			Chassis:     chassis.Asset(),
			ChassisID:   layout.ResolveIdentity(*chassis),
			FocusedSlot: asset.ChassisSlot,
		}, nil
	}

	if !asset.IsChassis() {
		return nil, errors.Wrap(ErrNotChassis, id.String())
	}

	return &model.ChassisSnapshot{Chassis: asset, ChassisID: layout.ResolveIdentity(*ref), FocusedSlot: focusedSlot}, nil
}

// RackSnapshots returns the snapshot of each rack within the range.
func RackSnapshots(ctx context.Context, repo Repository, rng model.RackRange) ([]*model.RackSnapshot, error) {
	racks, err := repo.Racks(ctx, rng)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*model.RackSnapshot, 0, len(racks))

	for _, rack := range racks {
		snapshot, err := repo.RackSnapshot(ctx, rack.ID.String())
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
