package schematic

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/schemtools/scheminfo/nbt"
)

const (
	compressionGzip = "gzipped"
	compressionNone = "not gzipped"
	compressionZlib = "zlib"
)

// decompress sniffs the container around the NBT payload. Gzip is decided by
// its magic bytes; a gzip stream that then fails to inflate is an error for
// the whole file. The zlib check is a heuristic (header checksum), so a
// candidate that fails to inflate falls back to being treated as raw NBT.
func decompress(raw []byte) ([]byte, string, error) {
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, compressionGzip, err
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, compressionGzip, err
		}
		return data, compressionGzip, nil
	}
	if isZlibHeader(raw) {
		if data, err := inflateZlib(raw); err == nil {
			return data, compressionZlib, nil
		}
	}
	return raw, compressionNone, nil
}

func isZlibHeader(raw []byte) bool {
	if len(raw) < 2 || raw[0] != 0x78 {
		return false
	}
	return (uint16(raw[0])<<8|uint16(raw[1]))%31 == 0
}

func inflateZlib(raw []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// decodeTree parses the payload into a compound tree. Sponge v3 files wrap
// everything in a "Schematic" child; when one is present the probes should
// see the wrapped compound as the root.
func decodeTree(data []byte) (*nbt.Compound, error) {
	root, err := nbt.NewDecoder(bytes.NewReader(data)).Decode()
	if err != nil {
		return nil, err
	}
	if inner, ok := root.GetCompound("Schematic"); ok {
		return inner, nil
	}
	return root, nil
}
