package layout

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/metal-toolbox/rackview/internal/model"
)

const (
	// DefaultColor is used for assets without a display color on the asset or its model.
	DefaultColor = "#5C7080"

	// blankLabel keeps rows of assets without a hostname the same height as labelled rows.
	blankLabel = " "
)

// ResolveIdentity returns the identifier of the inventory asset the reference resolves to.
//
// Projections resolve to the real asset, a projection of an asset planned for
// creation has no real asset and resolves to its own identifier.
func ResolveIdentity(ref model.AssetRef) uuid.UUID {
	if ref.IsProjection() && ref.RealAssetID() != uuid.Nil {
		return ref.RealAssetID()
	}

	return ref.Asset().ID
}

// ResolveColor returns the asset display color, falling back to the model color and
// then to DefaultColor.
func ResolveColor(ref model.AssetRef) string {
	return assetColor(ref.Asset())
}

func assetColor(a model.Asset) string {
	if c := strings.TrimSpace(a.DisplayColor); c != "" {
		return c
	}

	if c := strings.TrimSpace(a.Model.DisplayColor); c != "" {
		return c
	}

	return DefaultColor
}

// SameAsset returns true when both references resolve to the same inventory asset.
func SameAsset(a, b model.AssetRef) bool {
	return ResolveIdentity(a) == ResolveIdentity(b)
}

func hostnameLabel(a model.Asset) string {
	if strings.TrimSpace(a.Hostname) == "" {
		return blankLabel
	}

	return a.Hostname
}

func assetNumberLabel(a model.Asset) string {
	if a.AssetNumber == 0 {
		return ""
	}

	return strconv.Itoa(a.AssetNumber)
}
