package featuretable

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Layout is one property's position within a packed binary body.
type Layout struct {
	ByteOffset    int    `json:"byteOffset"`
	ComponentType string `json:"componentType,omitempty"`
}

// Header maps property names to their recorded layouts.
type Header map[string]Layout

// ParseHeader decodes a feature table JSON header, tolerating the trailing
// space padding added at pack time.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := json.Unmarshal(bytes.TrimRight(data, " "), &h); err != nil {
		return nil, fmt.Errorf("parsing feature table header: %w", err)
	}
	return h, nil
}

// Header parses the table's own JSON header.
func (t *Table) Header() (Header, error) {
	return ParseHeader(t.JSON)
}

// Slice returns byteLen body bytes starting at the property's byte offset.
func (t *Table) Slice(l Layout, byteLen int) ([]byte, error) {
	if l.ByteOffset < 0 || l.ByteOffset+byteLen > len(t.Binary) {
		return nil, fmt.Errorf("property span [%d..%d) exceeds body length %d",
			l.ByteOffset, l.ByteOffset+byteLen, len(t.Binary))
	}
	return t.Binary[l.ByteOffset : l.ByteOffset+byteLen], nil
}
