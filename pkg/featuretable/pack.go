package featuretable

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// boundary is the alignment the consuming chunked tile format requires of
// both the JSON header and the binary body.
const boundary = 8

// Table is a packed, immutable feature table. JSON includes its space
// padding; Binary includes its zero padding. Both lengths are multiples of 8.
type Table struct {
	JSON   []byte
	Binary []byte
}

// Len returns the total byte length of the table.
func (t *Table) Len() int {
	return len(t.JSON) + len(t.Binary)
}

// Bytes returns the full table as one contiguous buffer.
func (t *Table) Bytes() []byte {
	out := make([]byte, 0, t.Len())
	out = append(out, t.JSON...)
	out = append(out, t.Binary...)
	return out
}

// headerEntry is one property's layout record in the JSON header.
type headerEntry struct {
	ByteOffset    int    `json:"byteOffset"`
	ComponentType string `json:"componentType,omitempty"`
}

// align rounds n up to the next multiple of of.
func align(n, of int) int {
	return (n + of - 1) / of * of
}

// Pack assembles properties into a feature table. Property payloads are laid
// out in order; each starts at an offset, relative to the body start, that is
// a multiple of its component's byte width. Alignment gaps stay zero-filled.
func Pack(properties []Property) (*Table, error) {
	offsets := make([]int, len(properties))
	seen := make(map[string]struct{}, len(properties))

	bodyLen := 0
	for i, p := range properties {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProperty, p.Name)
		}
		seen[p.Name] = struct{}{}

		if len(p.Data) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyProperty, p.Name)
		}
		if !p.ComponentType.Valid() {
			return nil, fmt.Errorf("%w: %q has component %d", ErrInvalidComponent, p.Name, p.ComponentType)
		}

		bodyLen = align(bodyLen, p.ComponentType.ByteSize())
		offsets[i] = bodyLen
		bodyLen += len(p.Data)
	}

	header, err := marshalHeader(properties, offsets)
	if err != nil {
		return nil, err
	}

	// Space-pad the header so the body starts on an 8-byte boundary.
	jsonLen := align(len(header), boundary)
	for len(header) < jsonLen {
		header = append(header, ' ')
	}

	body := make([]byte, align(bodyLen, boundary))
	for i, p := range properties {
		copy(body[offsets[i]:], p.Data)
	}

	return &Table{JSON: header, Binary: body}, nil
}

// marshalHeader serializes the property layout, preserving property order.
// encoding/json alone would sort map keys alphabetically.
func marshalHeader(properties []Property, offsets []int) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, p := range properties {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		entry := headerEntry{ByteOffset: offsets[i]}
		if p.HasComponentType {
			entry.ComponentType = p.ComponentType.Tag()
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
