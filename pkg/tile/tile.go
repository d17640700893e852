// Package tile reads and writes the chunked instanced-tile container: a
// fixed little-endian header followed by the feature table and the embedded
// binary glTF payload.
package tile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kereth/tilesmith/pkg/featuretable"
)

const tileMagic = "i3dm"

// Version is the container version this package writes.
const Version = 1

// HeaderSize is the fixed byte length of the tile header.
const HeaderSize = 32

// GltfFormatEmbedded marks a tile whose glTF payload is embedded binary
// rather than a URI reference.
const GltfFormatEmbedded = 1

// Tile container errors.
var (
	ErrInvalidMagic       = fmt.Errorf("invalid tile magic: expected %q", tileMagic)
	ErrUnsupportedVersion = fmt.Errorf("unsupported tile version")
	ErrTruncatedTile      = fmt.Errorf("truncated tile data")
)

// Header is the tile's fixed-size header. All fields are little-endian.
type Header struct {
	Magic                        [4]byte
	Version                      uint32
	ByteLength                   uint32
	FeatureTableJSONByteLength   uint32
	FeatureTableBinaryByteLength uint32
	BatchTableJSONByteLength     uint32
	BatchTableBinaryByteLength   uint32
	GltfFormat                   uint32
}

// Tile is a decoded tile container.
type Tile struct {
	Header             Header
	FeatureTableJSON   []byte
	FeatureTableBinary []byte
	GLB                []byte
}

// Encode assembles a tile from a packed feature table and a binary glTF
// payload. The payload is zero-padded to an 8-byte boundary so the total
// tile length stays a multiple of 8.
func Encode(ft *featuretable.Table, glb []byte) ([]byte, error) {
	glbLen := len(glb)
	for glbLen%8 != 0 {
		glbLen++
	}

	header := Header{
		Version:                      Version,
		ByteLength:                   uint32(HeaderSize + ft.Len() + glbLen),
		FeatureTableJSONByteLength:   uint32(len(ft.JSON)),
		FeatureTableBinaryByteLength: uint32(len(ft.Binary)),
		GltfFormat:                   GltfFormatEmbedded,
	}
	copy(header.Magic[:], tileMagic)

	buf := bytes.NewBuffer(make([]byte, 0, header.ByteLength))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("writing tile header: %w", err)
	}
	buf.Write(ft.JSON)
	buf.Write(ft.Binary)
	buf.Write(glb)
	buf.Write(make([]byte, glbLen-len(glb)))

	return buf.Bytes(), nil
}

// Write encodes the tile and writes it to w.
func Write(w io.Writer, ft *featuretable.Table, glb []byte) error {
	data, err := Encode(ft, glb)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode parses a tile container. The returned slices alias data.
func Decode(data []byte) (*Tile, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedTile, len(data))
	}

	var header Header
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading tile header: %w", err)
	}

	if string(header.Magic[:]) != tileMagic {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	if int(header.ByteLength) > len(data) {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d",
			ErrTruncatedTile, header.ByteLength, len(data))
	}

	offset := HeaderSize
	segment := func(length uint32) ([]byte, error) {
		end := offset + int(length)
		if end > int(header.ByteLength) {
			return nil, fmt.Errorf("%w: segment [%d..%d) exceeds tile length %d",
				ErrTruncatedTile, offset, end, header.ByteLength)
		}
		s := data[offset:end]
		offset = end
		return s, nil
	}

	ftJSON, err := segment(header.FeatureTableJSONByteLength)
	if err != nil {
		return nil, err
	}
	ftBinary, err := segment(header.FeatureTableBinaryByteLength)
	if err != nil {
		return nil, err
	}
	// Batch table segments are not produced by this writer but are skipped
	// if present so foreign tiles still decode.
	if _, err := segment(header.BatchTableJSONByteLength); err != nil {
		return nil, err
	}
	if _, err := segment(header.BatchTableBinaryByteLength); err != nil {
		return nil, err
	}

	return &Tile{
		Header:             header,
		FeatureTableJSON:   ftJSON,
		FeatureTableBinary: ftBinary,
		GLB:                data[offset:header.ByteLength],
	}, nil
}
