package schematic

import (
	"math"

	"github.com/schemtools/scheminfo/nbt"
)

// extractDimensions reads Width/Height/Length with a lowercase fallback for
// each axis. A missing or non-integer axis counts as 0, and the volume is 0
// unless all three axes are positive and the product fits in an int64.
func extractDimensions(root *nbt.Compound, res *Result, rep *Report) {
	width := dimension(root, "Width", "width")
	height := dimension(root, "Height", "height")
	length := dimension(root, "Length", "length")

	rep.Addf("Dimensions: %d x %d x %d", width, height, length)

	var volume int64
	if width > 0 && height > 0 && length > 0 {
		volume = volumeOf(width, height, length)
	}
	rep.Addf("Total volume: %d blocks", volume)

	res.Dimensions = &DimensionInfo{
		Width:       width,
		Height:      height,
		Length:      length,
		TotalVolume: volume,
	}
}

// volumeOf multiplies three positive axes, returning 0 when the product
// overflows an int64.
func volumeOf(width, height, length int64) int64 {
	if width > math.MaxInt64/height {
		return 0
	}
	area := width * height
	if area > math.MaxInt64/length {
		return 0
	}
	return area * length
}

// dimension returns the first name that is present with an integer value.
func dimension(root *nbt.Compound, names ...string) int64 {
	for _, name := range names {
		if v, ok := root.GetInt(name); ok {
			return v
		}
	}
	return 0
}

// extractRegions walks the litematica Regions compound in insertion order.
// Every region yields a record, however partial: Size and Position render
// through the coordinate formatter when present, and the entity counts are
// emitted only for lists that exist and are non-empty.
func extractRegions(root *nbt.Compound, res *Result, rep *Report) {
	rep.Blank()
	rep.Addf("Regions:")
	res.Regions = map[string]*RegionInfo{}

	regions, ok := root.GetCompound("Regions")
	if !ok {
		return
	}
	for _, name := range regions.Keys() {
		region, _ := regions.GetCompound(name)
		rep.Addf("  - %s:", name)

		info := &RegionInfo{}
		if size, ok := region.GetCompound("Size"); ok {
			info.Size = formatCoordinates(size)
			rep.Addf("    Size: %s", info.Size)
		}
		if pos, ok := region.GetCompound("Position"); ok {
			info.Position = formatCoordinates(pos)
			rep.Addf("    Position: (%s)", info.Position)
		}
		if list, ok := region.GetList("BlockEntities"); ok && list.Len() > 0 {
			n := list.Len()
			info.BlockEntities = &n
			rep.Addf("    Block Entities: %d", n)
		}
		if list, ok := region.GetList("Entities"); ok && list.Len() > 0 {
			n := list.Len()
			info.Entities = &n
			rep.Addf("    Entities: %d", n)
		}
		res.Regions[name] = info
	}
}
