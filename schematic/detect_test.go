package schematic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemtools/scheminfo/nbt"
)

// compound builds an ordered test tree from alternating name/value pairs.
func compound(pairs ...any) *nbt.Compound {
	c := nbt.NewCompound()
	for i := 0; i < len(pairs); i += 2 {
		c.Set(pairs[i].(string), pairs[i+1].(nbt.Value))
	}
	return c
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		root *nbt.Compound
		want Format
	}{
		{
			name: "modern worldedit",
			root: compound("Palette", compound(), "BlockData", nbt.ByteArray{0}),
			want: FormatModernWorldEdit,
		},
		{
			name: "nested palette under Blocks",
			root: compound("Blocks", compound("Palette", compound())),
			want: FormatModernWorldEditNested,
		},
		{
			name: "block data only",
			root: compound("BlockData", nbt.ByteArray{0}),
			want: FormatModernAlternate,
		},
		{
			name: "lowercase blocks key",
			root: compound("blocks", nbt.ByteArray{0}),
			want: FormatModernAlternate,
		},
		{
			name: "classic worldedit",
			root: compound("Blocks", nbt.ByteArray{0}, "Data", nbt.ByteArray{0}),
			want: FormatClassicWorldEdit,
		},
		{
			name: "litematica",
			root: compound("Regions", compound()),
			want: FormatLitematica,
		},
		{
			name: "empty tree",
			root: compound(),
			want: FormatUnknown,
		},
		{
			name: "unrelated keys",
			root: compound("Version", nbt.Int(2), "Author", nbt.String("x")),
			want: FormatUnknown,
		},
		{
			name: "flat palette beats nested",
			root: compound(
				"Palette", compound(),
				"BlockData", nbt.ByteArray{0},
				"Blocks", compound("Palette", compound()),
			),
			want: FormatModernWorldEdit,
		},
		{
			name: "nested palette beats block data",
			root: compound(
				"Blocks", compound("Palette", compound()),
				"BlockData", nbt.ByteArray{0},
			),
			want: FormatModernWorldEditNested,
		},
		{
			name: "classic beats litematica",
			root: compound(
				"Blocks", nbt.ByteArray{0},
				"Data", nbt.ByteArray{0},
				"Regions", compound(),
			),
			want: FormatClassicWorldEdit,
		},
		{
			name: "blocks without nested palette and without data",
			root: compound("Blocks", compound("Data", nbt.ByteArray{0})),
			want: FormatUnknown,
		},
		{
			name: "presence only, palette need not be a compound",
			root: compound("Palette", nbt.Int(3), "BlockData", nbt.String("x")),
			want: FormatModernWorldEdit,
		},
		{
			name: "keys are case sensitive",
			root: compound("palette", compound(), "BlockData", nbt.ByteArray{0}),
			want: FormatModernAlternate,
		},
		{
			name: "blocks list cannot carry a nested palette",
			root: compound("Blocks", &nbt.List{ElemTag: nbt.TagCompound}, "Data", nbt.ByteArray{0}),
			want: FormatClassicWorldEdit,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.root))
		})
	}
}
