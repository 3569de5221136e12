package schematic

import "github.com/schemtools/scheminfo/nbt"

// Format identifies which schema variant a schematic tree follows. Files
// carry no declared type tag, so the variant is inferred structurally.
type Format string

const (
	FormatModernWorldEdit       Format = "modern_worldedit"
	FormatModernWorldEditNested Format = "modern_worldedit_nested"
	FormatModernAlternate       Format = "modern_alternate"
	FormatClassicWorldEdit      Format = "classic_worldedit"
	FormatLitematica            Format = "litematica"
	FormatUnknown               Format = "unknown"
)

// Detect classifies the root compound by running structural probes in a
// fixed order; the order is the tie-break policy when a tree matches more
// than one shape. Probes check key presence only and never fail on missing
// or oddly typed values. Unknown is a valid outcome, not an error.
func Detect(root *nbt.Compound) Format {
	switch {
	case root.Has("Palette") && root.Has("BlockData"):
		return FormatModernWorldEdit
	case hasNestedPalette(root):
		return FormatModernWorldEditNested
	case root.Has("BlockData") || root.Has("blocks"):
		return FormatModernAlternate
	case root.Has("Blocks") && root.Has("Data"):
		return FormatClassicWorldEdit
	case root.Has("Regions"):
		return FormatLitematica
	}
	return FormatUnknown
}

func hasNestedPalette(root *nbt.Compound) bool {
	blocks, ok := root.GetCompound("Blocks")
	return ok && blocks.Has("Palette")
}
