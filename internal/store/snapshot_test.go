package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/metal-toolbox/rackview/internal/fixtures"
	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/model"
)

func TestChassisSnapshot(t *testing.T) {
	chassisID := uuid.New()
	bladeID := uuid.New()

	chassis := model.Asset{
		ID:           chassisID,
		Hostname:     "chassis01",
		RackPosition: 10,
		Model:        model.Model{Height: 10, Kind: model.ModelKindBladeChassis},
	}

	blade := model.Asset{
		ID:          bladeID,
		Model:       model.Model{Height: 1, Kind: model.ModelKindBlade},
		ChassisID:   &chassisID,
		ChassisSlot: 7,
	}

	chassis.Blades = []model.AssetRef{model.Direct(blade)}

	chassisRef := model.Direct(chassis)

	projected := chassis
	projected.ID = uuid.New()
	projected.RackPosition = 20
	projectedRef := model.Projection(projected, chassisID)

	projectedBlade := blade
	projectedBlade.ID = uuid.New()
	projectedBlade.ChassisID = &projected.ID
	projectedBladeRef := model.Direct(projectedBlade)
	bladeRef := model.Direct(blade)
	serverRef := model.Direct(model.Asset{ID: uuid.New(), Model: model.Model{Height: 1, Kind: model.ModelKindRackmount}})

	tests := []struct {
		name      string
		id        uuid.UUID
		focus     int
		mockSetup func(m *fixtures.MockRepository)
		wantFocus int
		wantErr   error
	}{
		{
			name:  "chassis",
			id:    chassisID,
			focus: 3,
			mockSetup: func(m *fixtures.MockRepository) {
				m.EXPECT().AssetByID(gomock.Any(), chassisID).Return(&chassisRef, nil)
			},
			wantFocus: 3,
		},
		{
			name:  "blade focuses its slot",
			id:    bladeID,
			focus: 3,
			mockSetup: func(m *fixtures.MockRepository) {
				m.EXPECT().AssetByID(gomock.Any(), bladeID).Return(&bladeRef, nil)
				m.EXPECT().AssetByID(gomock.Any(), chassisID).Return(&chassisRef, nil)
			},
			wantFocus: 7,
		},
		{
			name:  "projected chassis resolves to the real chassis",
			id:    projected.ID,
			focus: 2,
			mockSetup: func(m *fixtures.MockRepository) {
				m.EXPECT().AssetByID(gomock.Any(), projected.ID).Return(&projectedRef, nil)
			},
			wantFocus: 2,
		},
		{
			name: "blade seated in a projected chassis",
			id:   projectedBlade.ID,
			mockSetup: func(m *fixtures.MockRepository) {
				m.EXPECT().AssetByID(gomock.Any(), projectedBlade.ID).Return(&projectedBladeRef, nil)
				m.EXPECT().AssetByID(gomock.Any(), projected.ID).Return(&projectedRef, nil)
			},
			wantFocus: 7,
		},
		{
			name: "rackmount asset",
			id:   serverRef.Asset().ID,
			mockSetup: func(m *fixtures.MockRepository) {
				m.EXPECT().AssetByID(gomock.Any(), serverRef.Asset().ID).Return(&serverRef, nil)
			},
			wantErr: ErrNotChassis,
		},
		{
			name: "unknown asset",
			id:   chassisID,
			mockSetup: func(m *fixtures.MockRepository) {
				m.EXPECT().AssetByID(gomock.Any(), chassisID).Return(nil, ErrAssetNotFound)
			},
			wantErr: ErrAssetNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := fixtures.NewMockRepository(ctrl)
			tc.mockSetup(repo)

			snapshot, err := ChassisSnapshot(context.Background(), repo, tc.id, tc.focus)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, chassisID, snapshot.ChassisID)
			assert.Equal(t, tc.wantFocus, snapshot.FocusedSlot)

			view := layout.NewBuilder().ChassisView(snapshot)
			assert.Equal(t, chassisID, view.ChassisID)
			assert.Equal(t, "chassis01", view.Label)
		})
	}
}

func TestRackSnapshots(t *testing.T) {
	s, err := NewMockInventory()
	require.NoError(t, err)

	snapshots, err := RackSnapshots(context.Background(), s, model.RackRange{})
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, "A1", snapshots[0].Rack.Name())
	assert.Len(t, snapshots[0].Assets, 4)
	assert.Equal(t, "B2", snapshots[1].Rack.Name())
	assert.Len(t, snapshots[1].Assets, 1)
}
