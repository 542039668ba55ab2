// Package layout builds the rack elevation and chassis slot grid descriptors rendered
// by the dashboard.
//
// The builders are pure: they read a snapshot, never modify it and allocate only the
// descriptors they return. Malformed inventory data never causes a failure, it is
// reported to the configured diagnostics.Reporter and degraded to empty rows or slots.
package layout

import (
	"fmt"

	"github.com/metal-toolbox/rackview/internal/diagnostics"
	"github.com/metal-toolbox/rackview/internal/model"
)

// Builder builds layout descriptors from inventory snapshots.
//
// A Builder holds no state besides its reporter and is safe for concurrent use.
type Builder struct {
	reporter diagnostics.Reporter
}

// Option sets a Builder parameter.
type Option func(*Builder)

// WithReporter sets the reporter data integrity diagnostics are sent to.
func WithReporter(r diagnostics.Reporter) Option {
	return func(b *Builder) {
		if r != nil {
			b.reporter = r
		}
	}
}

// NewBuilder returns a Builder, diagnostics are discarded unless WithReporter is given.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{reporter: diagnostics.Discard}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Builder) report(d diagnostics.Diagnostic) {
	if b == nil || b.reporter == nil {
		return
	}

	b.reporter.Report(d)
}

// Elevation returns the unit rows of the rack, bottom unit first.
//
// The assets are expected sorted ascending by rack position. Each unit of the rack is
// covered exactly once: an asset footprint collapses into one occupied row and every
// unit not claimed by an asset is an empty row.
//
// An asset that does not fit, overlaps a preceding asset or has an invalid model
// height is left out of the elevation, its units are filled with empty rows and a
// diagnostic is reported. The asset stays at the head of the queue when its footprint
// overflows the rack, so the assets behind it are left out as well.
func (b *Builder) Elevation(rack model.Rack, assets []model.AssetRef) model.Elevation {
	height := rack.Height
	if height < 1 {
		b.report(diagnostics.Diagnostic{
			Kind:    diagnostics.KindInvalidRackHeight,
			Rack:    rack.Name(),
			Message: fmt.Sprintf("rack height %d", height),
		})

		return model.Elevation{}
	}

	queue := b.mounted(rack, assets)
	rows := make(model.Elevation, 0, height)

	for unit := 0; unit < height; {
		if len(queue) > 0 && queue[0].Asset().RackPosition-1 == unit {
			head := queue[0]
			width := head.Asset().Model.Height

			if width >= 1 && unit+width <= height {
				rows = append(rows, occupiedRow(unit+1, head))
				queue = queue[1:]
				unit += width

				continue
			}
		}

		rows = append(rows, model.EmptyRow(unit+1))
		unit++
	}

	for _, ref := range queue {
		b.reportDropped(rack, ref)
	}

	return rows
}

// mounted returns the assets with a rack position, reporting the rest.
func (b *Builder) mounted(rack model.Rack, assets []model.AssetRef) []model.AssetRef {
	queue := make([]model.AssetRef, 0, len(assets))

	for _, ref := range assets {
		if ref.Asset().Mounted() {
			queue = append(queue, ref)
			continue
		}

		b.report(diagnostics.Diagnostic{
			Kind:    diagnostics.KindUnmounted,
			Rack:    rack.Name(),
			AssetID: ResolveIdentity(ref),
			Message: "asset in rack snapshot has no rack position",
		})
	}

	return queue
}

func (b *Builder) reportDropped(rack model.Rack, ref model.AssetRef) {
	a := ref.Asset()
	d := diagnostics.Diagnostic{
		Rack:    rack.Name(),
		AssetID: ResolveIdentity(ref),
	}

	top := a.RackPosition + a.Model.Height - 1

	switch {
	case a.Model.Height < 1:
		d.Kind = diagnostics.KindInvalidHeight
		d.Message = fmt.Sprintf("model %s height %d", a.Model.Name(), a.Model.Height)
	case top > rack.Height:
		d.Kind = diagnostics.KindFootprintOverflow
		d.Message = fmt.Sprintf("units U%d-U%d exceed rack height %d", a.RackPosition, top, rack.Height)
	default:
		d.Kind = diagnostics.KindOverlap
		d.Message = fmt.Sprintf("units U%d-U%d overlap a preceding asset", a.RackPosition, top)
	}

	b.report(d)
}

func occupiedRow(unit int, ref model.AssetRef) model.UnitRow {
	a := ref.Asset()

	return model.UnitRow{
		Kind:          model.RowOccupied,
		Unit:          unit,
		Height:        a.Model.Height,
		Label:         elevationLabel(a),
		Color:         ResolveColor(ref),
		TargetAssetID: ResolveIdentity(ref),
	}
}

// elevationLabel returns the hostname, chassis labels include the blade count and model.
func elevationLabel(a model.Asset) string {
	label := hostnameLabel(a)
	if !a.IsChassis() {
		return label
	}

	noun := "blades"
	if len(a.Blades) == 1 {
		noun = "blade"
	}

	return fmt.Sprintf("%s | %d %s | %s %s", label, len(a.Blades), noun, a.Model.Vendor, a.Model.ModelNumber)
}
