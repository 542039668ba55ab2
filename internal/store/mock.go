package store

import (
	"github.com/metal-toolbox/rackview/internal/fixtures"
)

// NewMockInventory returns a MemStore loaded with the fixture inventory.
//
// The fixture inventory includes an unmounted spare asset and no dangling records,
// Load is expected to succeed.
func NewMockInventory() (*MemStore, error) {
	s := NewMemStore()

	if err := s.Load(fixtures.NewInventory()); err != nil {
		return nil, err
	}

	return s, nil
}
