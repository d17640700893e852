package tile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kereth/tilesmith/pkg/accessor"
	"github.com/kereth/tilesmith/pkg/featuretable"
)

func testTable(t *testing.T) *featuretable.Table {
	t.Helper()
	table, err := featuretable.Pack([]featuretable.Property{
		featuretable.NewTagged("BATCH_ID", accessor.UInt8, []byte{0, 1, 2}),
	})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	return table
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	table := testTable(t)
	glb := []byte("glTF-payload") // 12 bytes, needs padding to 16

	data, err := Encode(table, glb)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if len(data)%8 != 0 {
		t.Errorf("tile length %d not a multiple of 8", len(data))
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded.Header.Version != Version {
		t.Errorf("version = %d", decoded.Header.Version)
	}
	if decoded.Header.GltfFormat != GltfFormatEmbedded {
		t.Errorf("gltfFormat = %d", decoded.Header.GltfFormat)
	}
	if int(decoded.Header.ByteLength) != len(data) {
		t.Errorf("byteLength = %d, tile is %d", decoded.Header.ByteLength, len(data))
	}

	if !bytes.Equal(decoded.FeatureTableJSON, table.JSON) {
		t.Error("feature table JSON not preserved")
	}
	if !bytes.Equal(decoded.FeatureTableBinary, table.Binary) {
		t.Error("feature table binary not preserved")
	}
	if !bytes.Equal(decoded.GLB[:len(glb)], glb) {
		t.Error("glTF payload not preserved")
	}
	for _, b := range decoded.GLB[len(glb):] {
		if b != 0 {
			t.Error("glTF padding not zero-filled")
		}
	}

	header, err := featuretable.ParseHeader(decoded.FeatureTableJSON)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if header["BATCH_ID"].ComponentType != "UNSIGNED_BYTE" {
		t.Errorf("BATCH_ID tag = %q", header["BATCH_ID"].ComponentType)
	}
}

func TestWrite(t *testing.T) {
	table := testTable(t)
	var buf bytes.Buffer
	if err := Write(&buf, table, []byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Decode(buf.Bytes()); err != nil {
		t.Fatalf("Decode of written tile failed: %v", err)
	}
}

func TestDecode_Errors(t *testing.T) {
	table := testTable(t)
	valid, _ := Encode(table, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "b3dm")
	if _, err := Decode(badMagic); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}

	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 9
	if _, err := Decode(badVersion); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}

	if _, err := Decode(valid[:10]); !errors.Is(err, ErrTruncatedTile) {
		t.Errorf("short data: expected ErrTruncatedTile, got %v", err)
	}

	if _, err := Decode(valid[:HeaderSize]); !errors.Is(err, ErrTruncatedTile) {
		t.Errorf("header only: expected ErrTruncatedTile, got %v", err)
	}
}
