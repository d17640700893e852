// Package featuretable packs per-instance attribute data into the binary
// feature table layout: a JSON property header padded to 8 bytes with spaces,
// followed by a binary body of aligned property payloads zero-padded to 8.
package featuretable

import (
	"errors"

	"github.com/kereth/tilesmith/pkg/accessor"
)

// Packing errors.
var (
	ErrDuplicateProperty = errors.New("duplicate property name")
	ErrEmptyProperty     = errors.New("empty property payload")
	ErrInvalidComponent  = errors.New("invalid property component type")
)

// Property is one named, typed attribute column destined for the binary body.
// Data holds the little-endian payload; the packer copies it into the output
// and never retains it past the Pack call.
type Property struct {
	Name             string
	ComponentType    accessor.ComponentType
	HasComponentType bool // emit the componentType tag in the JSON header
	Data             []byte
}

// New returns a property whose component type is implied by the wire
// convention (no tag in the JSON header).
func New(name string, comp accessor.ComponentType, data []byte) Property {
	return Property{Name: name, ComponentType: comp, Data: data}
}

// NewTagged returns a property that declares its component type in the
// JSON header.
func NewTagged(name string, comp accessor.ComponentType, data []byte) Property {
	return Property{Name: name, ComponentType: comp, HasComponentType: true, Data: data}
}
