package schematic

import (
	"errors"
	"strings"

	"github.com/willf/bitset"

	"github.com/schemtools/scheminfo/nbt"
)

// extractBlockStats dispatches on the detected variant. The alternate and
// unknown variants populate no block section at all.
func extractBlockStats(root *nbt.Compound, format Format, res *Result, rep *Report) {
	switch format {
	case FormatModernWorldEdit, FormatModernWorldEditNested:
		extractPaletteStats(root, res, rep)
	case FormatClassicWorldEdit:
		extractClassicStats(root, res, rep)
	case FormatLitematica:
		rep.Blank()
		rep.Addf("Block data available in regions")
	}
}

// extractPaletteStats dumps the root Palette in full: every entry is listed
// in both artifacts, no matter how large the palette is. A Palette that is
// not a compound becomes a section-local error instead of aborting the file.
func extractPaletteStats(root *nbt.Compound, res *Result, rep *Report) {
	v, ok := root.Get("Palette")
	if !ok {
		return
	}

	stats := &PaletteStats{Blocks: []PaletteEntry{}}
	rep.Blank()
	if palette, ok := v.(*nbt.Compound); ok {
		stats.TotalBlockTypes = palette.Len()
		rep.Addf("Block types: %d", stats.TotalBlockTypes)
		rep.Addf("All block types:")
		for _, name := range palette.Keys() {
			entry, _ := palette.Get(name)
			id := scalarValue(entry)
			rep.Addf("  - %s (ID: %v)", name, id)
			stats.Blocks = append(stats.Blocks, PaletteEntry{Name: name, ID: id})
		}
	} else {
		stats.Error = "Palette is " + nbt.TagName(v.Tag()) + ", not a compound"
		rep.Addf("Block types: 0")
		rep.Addf("All block types:")
		rep.Addf("Error listing block types: %s", stats.Error)
	}
	res.BlockStats = stats

	if data, ok := root.Get("BlockData"); ok {
		if n, ok := nodeLen(data); ok {
			res.BlockDataSize = &n
			rep.Blank()
			rep.Addf("Block data size: %d bytes", n)
		}
	}
}

// extractClassicStats reads the flat Blocks/Data arrays of the classic
// format. Each field is independently optional; a Blocks node without a
// countable shape reports "unknown" rather than failing.
func extractClassicStats(root *nbt.Compound, res *Result, rep *Report) {
	rep.Blank()
	rep.Addf("Block data available (classic format)")

	blocks, ok := root.Get("Blocks")
	if !ok {
		return
	}
	stats := &ClassicStats{}
	if n, ok := nodeLen(blocks); ok {
		stats.TotalBlocks = n
		rep.Addf("Total blocks: %d", n)
	} else {
		stats.TotalBlocks = "unknown"
		rep.Addf("Total blocks: unknown")
	}
	res.BlockStats = stats

	if data, ok := root.Get("Data"); ok {
		if n, ok := nodeLen(data); ok {
			res.BlockDataSize = &n
			rep.Addf("Block data size: %d bytes", n)
		}
	}
	if list, ok := root.GetList("TileEntities"); ok {
		n := list.Len()
		res.TileEntities = &n
		rep.Addf("Tile entities: %d", n)
	}
	if list, ok := root.GetList("Entities"); ok {
		n := list.Len()
		res.Entities = &n
		rep.Addf("Entities: %d", n)
	}
}

// nodeLen reports the element count of the sequence kinds. Scalar kinds have
// no length; the bool result distinguishes that from an empty sequence.
func nodeLen(v nbt.Value) (int, bool) {
	switch n := v.(type) {
	case nbt.ByteArray:
		return len(n), true
	case nbt.IntArray:
		return len(n), true
	case nbt.LongArray:
		return len(n), true
	case nbt.String:
		return len(n), true
	case *nbt.List:
		return n.Len(), true
	}
	return 0, false
}

var (
	errVarintTooLong   = errors.New("varint run exceeds 5 bytes")
	errVarintTruncated = errors.New("truncated varint at end of block data")
)

// scanPaletteUsage decodes the WorldEdit varint stream in BlockData, marks
// every referenced palette index in a bitset, and reports the entries the
// data never uses. Only runs when Palette is a compound and BlockData is a
// byte array. Indices beyond the palette are not tracked, so the bitset
// never grows past the palette size; a malformed stream is a section-local
// error with the counts decoded so far.
func scanPaletteUsage(root *nbt.Compound, res *Result, rep *Report) {
	palette, ok := root.GetCompound("Palette")
	if !ok {
		return
	}
	raw, ok := root.Get("BlockData")
	if !ok {
		return
	}
	data, ok := raw.(nbt.ByteArray)
	if !ok {
		return
	}

	usage := &PaletteUsage{}
	used := bitset.New(uint(palette.Len()))
	for i := 0; i < len(data); {
		idx, n, err := readVarint(data[i:])
		if err != nil {
			usage.Error = err.Error()
			break
		}
		if idx >= 0 && idx < palette.Len() {
			used.Set(uint(idx))
		}
		usage.TotalBlocks++
		i += n
	}

	for _, name := range palette.Keys() {
		id, ok := palette.GetInt(name)
		if !ok || id < 0 || !used.Test(uint(id)) {
			usage.UnusedTypes = append(usage.UnusedTypes, name)
		}
	}
	usage.UsedTypes = palette.Len() - len(usage.UnusedTypes)
	res.PaletteUsage = usage

	rep.Blank()
	rep.Addf("Palette usage:")
	rep.Addf("  Blocks decoded: %d", usage.TotalBlocks)
	rep.Addf("  Palette entries used: %d of %d", usage.UsedTypes, palette.Len())
	if len(usage.UnusedTypes) > 0 {
		rep.Addf("  Unused entries: %s", strings.Join(usage.UnusedTypes, ", "))
	}
	if usage.Error != "" {
		rep.Addf("  Error decoding block data: %s", usage.Error)
	}
}

// readVarint decodes one little-endian base-128 varint (7-bit groups, MSB
// continuation) and returns the value with the number of bytes consumed.
func readVarint(b []byte) (int, int, error) {
	var v uint32
	for i := 0; i < len(b); i++ {
		if i == 5 {
			return 0, 0, errVarintTooLong
		}
		c := b[i]
		v |= uint32(c&0x7f) << (7 * i)
		if c&0x80 == 0 {
			return int(v), i + 1, nil
		}
	}
	return 0, 0, errVarintTruncated
}
