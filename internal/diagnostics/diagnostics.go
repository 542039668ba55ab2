// Package diagnostics collects the data integrity problems the layout builders
// recover from.
//
// The builders never fail, malformed inventory data is degraded to filler rows and
// empty slots and a Diagnostic is reported for each problem.
package diagnostics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/metal-toolbox/rackview/internal/metrics"
)

// Kind identifies the class of a data integrity problem.
type Kind string

const (
	// KindInvalidRackHeight is reported for a rack with a height below one unit.
	KindInvalidRackHeight Kind = "invalid_rack_height"
	// KindUnmounted is reported for an asset in a rack snapshot without a rack position.
	KindUnmounted Kind = "unmounted"
	// KindInvalidHeight is reported for an asset whose model height is below one unit.
	KindInvalidHeight Kind = "invalid_model_height"
	// KindFootprintOverflow is reported for an asset that extends beyond the top of the rack.
	KindFootprintOverflow Kind = "footprint_overflow"
	// KindOverlap is reported for an asset whose units are claimed by a preceding asset.
	KindOverlap Kind = "overlap"
	// KindDuplicateSlot is reported when more than one blade claims a chassis slot.
	KindDuplicateSlot Kind = "duplicate_slot"
	// KindSlotOutOfRange is reported for a blade with a slot outside the chassis slot range.
	KindSlotOutOfRange Kind = "slot_out_of_range"
	// KindDanglingReference is reported for inventory records referring to unknown
	// models, racks or chassis.
	KindDanglingReference Kind = "dangling_reference"
	// KindDuplicateRecord is reported for inventory records reusing an identifier.
	KindDuplicateRecord Kind = "duplicate_record"
)

// Diagnostic is a data integrity problem found while building a layout or loading an inventory.
type Diagnostic struct {
	Kind    Kind
	Rack    string
	AssetID uuid.UUID
	Slot    int
	Message string
}

func (d Diagnostic) Error() string {
	var b strings.Builder

	b.WriteString(string(d.Kind))

	if d.Rack != "" {
		b.WriteString(" rack=" + d.Rack)
	}

	if d.AssetID != uuid.Nil {
		b.WriteString(" asset=" + d.AssetID.String())
	}

	if d.Slot != 0 {
		b.WriteString(fmt.Sprintf(" slot=%d", d.Slot))
	}

	if d.Message != "" {
		b.WriteString(": " + d.Message)
	}

	return b.String()
}

// Reporter receives diagnostics, implementations must be safe for concurrent use.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// LogReporter logs diagnostics and counts them by kind.
type LogReporter struct {
	logger logrus.FieldLogger
}

// NewLogReporter returns a Reporter that writes diagnostics to the given logger.
func NewLogReporter(logger logrus.FieldLogger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (l *LogReporter) Report(d Diagnostic) {
	metrics.DiagnosticsCounter.WithLabelValues(string(d.Kind)).Inc()

	fields := logrus.Fields{"kind": d.Kind}

	if d.Rack != "" {
		fields["rack"] = d.Rack
	}

	if d.AssetID != uuid.Nil {
		fields["assetID"] = d.AssetID.String()
	}

	if d.Slot != 0 {
		fields["slot"] = d.Slot
	}

	l.logger.WithFields(fields).Warn(d.Message)
}

// Recorder keeps the diagnostics reported to it.
type Recorder struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.diags = append(r.diags, d)
}

// Diagnostics returns a copy of the recorded diagnostics in the order reported.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Diagnostic(nil), r.diags...)
}

// Kinds returns the kind of each recorded diagnostic in the order reported.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]Kind, 0, len(r.diags))
	for _, d := range r.diags {
		kinds = append(kinds, d.Kind)
	}

	return kinds
}

// Err returns the recorded diagnostics as a single error, nil when none were recorded.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var merr *multierror.Error
	for _, d := range r.diags {
		merr = multierror.Append(merr, d)
	}

	return merr.ErrorOrNil()
}

// Reset drops the recorded diagnostics.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.diags = nil
}
