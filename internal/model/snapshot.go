package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrRackRange = errors.New("invalid rack range")
)

// RackSnapshot is a rack and its mounted assets, sorted ascending by rack position.
type RackSnapshot struct {
	Rack   Rack
	Assets []AssetRef
}

// ChassisSnapshot is a chassis with its blades resolved.
//
// ChassisID is the identifier the chassis resolves to, the real asset when the
// chassis is a change plan projection. It defaults to Chassis.ID when unset.
// FocusedSlot is zero when no slot is focused.
type ChassisSnapshot struct {
	Chassis     Asset
	ChassisID   uuid.UUID
	FocusedSlot int
}

// RackRange selects racks by row letter and rack number, both bounds inclusive.
//
// Empty row bounds and zero number bounds are unbounded.
type RackRange struct {
	RowStart string
	RowEnd   string
	NumStart int
	NumEnd   int
}

// Contains returns true when the rack falls within the range.
func (r RackRange) Contains(rack Rack) bool {
	row := strings.ToUpper(rack.RowLetter)

	if r.RowStart != "" && row < strings.ToUpper(r.RowStart) {
		return false
	}

	if r.RowEnd != "" && row > strings.ToUpper(r.RowEnd) {
		return false
	}

	if r.NumStart != 0 && rack.RackNum < r.NumStart {
		return false
	}

	if r.NumEnd != 0 && rack.RackNum > r.NumEnd {
		return false
	}

	return true
}

// ParseRackRange parses row and number range expressions of the form A-C and 1-4.
//
// A single value selects one row or number, an empty value is unbounded.
func ParseRackRange(rows, nums string) (RackRange, error) {
	var rng RackRange

	rowStart, rowEnd := splitRange(rows)
	for _, row := range []string{rowStart, rowEnd} {
		if row == "" {
			continue
		}

		if len(row) != 1 || row[0] < 'A' || row[0] > 'Z' {
			return rng, errors.Wrap(ErrRackRange, "row letter: "+row)
		}
	}

	if rowStart > rowEnd {
		return rng, errors.Wrap(ErrRackRange, "row range is reversed: "+rows)
	}

	rng.RowStart, rng.RowEnd = rowStart, rowEnd

	numStart, numEnd := splitRange(nums)
	if numStart != "" {
		start, err := strconv.Atoi(numStart)
		if err != nil || start < 1 {
			return rng, errors.Wrap(ErrRackRange, "rack number: "+numStart)
		}

		end, err := strconv.Atoi(numEnd)
		if err != nil || end < 1 {
			return rng, errors.Wrap(ErrRackRange, "rack number: "+numEnd)
		}

		if start > end {
			return rng, errors.Wrap(ErrRackRange, "number range is reversed: "+nums)
		}

		rng.NumStart, rng.NumEnd = start, end
	}

	return rng, nil
}

func splitRange(expr string) (start, end string) {
	expr = strings.ToUpper(strings.TrimSpace(expr))
	if expr == "" {
		return "", ""
	}

	parts := strings.SplitN(expr, "-", 2)
	if len(parts) == 1 {
		return parts[0], parts[0]
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
