package schematic

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemtools/scheminfo/nbt"
)

func localDate(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

func TestExtractMetadata(t *testing.T) {
	root := compound("Metadata", compound(
		"Name", nbt.String("Castle"),
		"EnclosingSize", compound("x", nbt.Int(10), "y", nbt.Int(20), "z", nbt.Int(30)),
		"TimeCreated", nbt.Long(1700000000000),
		"WorldEdit", compound("Version", nbt.String("7.2.15")),
		"RegionCount", nbt.Int(3),
		"Flags", compound("mirrored", nbt.Byte(1), "locked", nbt.Byte(0)),
	))

	res := &Result{}
	rep := &Report{}
	extractMetadata(root, res, rep)

	created := fmt.Sprintf("1700000000000 (%s)", localDate(1700000000000))
	want := []string{
		"",
		"Metadata:",
		"  Name: Castle",
		"  EnclosingSize: 10 x 20 x 30",
		"  TimeCreated: " + created,
		"  RegionCount: 3",
		"  Flags: [complex object]",
		"    Keys: mirrored, locked",
	}
	assert.Equal(t, want, rep.Lines())

	assert.Equal(t, map[string]any{
		"Name":          "Castle",
		"EnclosingSize": "10 x 20 x 30",
		"TimeCreated":   created,
		"RegionCount":   "3",
		"Flags":         map[string]any{"keys": []string{"mirrored", "locked"}},
	}, res.Metadata)
}

func TestExtractMetadata_Absent(t *testing.T) {
	res := &Result{}
	rep := &Report{}
	extractMetadata(compound("Width", nbt.Int(1)), res, rep)

	assert.Empty(t, rep.Lines())
	assert.Nil(t, res.Metadata)
}

func TestExtractMetadata_NonCompound(t *testing.T) {
	res := &Result{}
	rep := &Report{}
	extractMetadata(compound("Metadata", nbt.String("oops")), res, rep)

	assert.Empty(t, rep.Lines())
	assert.Nil(t, res.Metadata)
}

func TestExtractWorldEditMetadata(t *testing.T) {
	root := compound("Metadata", compound(
		"Name", nbt.String("Castle"),
		"WorldEdit", compound(
			"Origin", compound("x", nbt.Int(100), "y", nbt.Int(64), "z", nbt.Int(-200)),
			"Version", nbt.String("7.2.15"),
			"TimeCreated", nbt.Long(1700000000000),
			"Platforms", compound("bukkit", nbt.String("1.20")),
		),
	))

	res := &Result{}
	rep := &Report{}
	extractWorldEditMetadata(root, res, rep)

	want := []string{
		"",
		"WorldEdit Metadata:",
		"  Origin: 100 x 64 x -200",
		"  Version: 7.2.15",
		"  TimeCreated: 1700000000000",
		"  Platforms: [complex object]",
		"    Keys: bukkit",
	}
	assert.Equal(t, want, rep.Lines(), "no timestamp formatting in the WorldEdit pass")

	assert.Equal(t, map[string]any{
		"Origin":      "100 x 64 x -200",
		"Version":     "7.2.15",
		"TimeCreated": "1700000000000",
		"Platforms":   map[string]any{"keys": []string{"bukkit"}},
	}, res.WorldEditMeta)
}

func TestExtractWorldEditMetadata_Absent(t *testing.T) {
	res := &Result{}
	rep := &Report{}
	extractWorldEditMetadata(compound("Metadata", compound("Name", nbt.String("x"))), res, rep)

	assert.Empty(t, rep.Lines())
	assert.Nil(t, res.WorldEditMeta)
}

func TestFormatCoordinates(t *testing.T) {
	tests := []struct {
		name string
		in   *nbt.Compound
		want string
	}{
		{name: "all axes", in: compound("x", nbt.Int(1), "y", nbt.Int(2), "z", nbt.Int(3)), want: "1 x 2 x 3"},
		{name: "missing axis", in: compound("x", nbt.Int(1), "z", nbt.Int(3)), want: "1 x ? x 3"},
		{name: "empty", in: compound(), want: "? x ? x ?"},
		{name: "non-numeric axis", in: compound("x", nbt.String("east"), "y", nbt.Int(2), "z", nbt.Int(3)), want: "? x 2 x 3"},
		{name: "floating point axis", in: compound("x", nbt.Double(1.5), "y", nbt.Int(2), "z", nbt.Int(3)), want: "1.5 x 2 x 3"},
		{name: "single precision axis", in: compound("x", nbt.Float(0.1), "y", nbt.Int(2), "z", nbt.Int(3)), want: "0.1 x 2 x 3"},
		{name: "negative axes", in: compound("x", nbt.Int(-4), "y", nbt.Int(-5), "z", nbt.Int(-6)), want: "-4 x -5 x -6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCoordinates(tt.in))
		})
	}
}

func TestFormatCoordinates_Idempotent(t *testing.T) {
	in := compound("x", nbt.Int(1), "y", nbt.Int(2), "z", nbt.Int(3))
	first := formatCoordinates(in)
	assert.Equal(t, first, formatCoordinates(in))
}

func TestFormatTimestamp(t *testing.T) {
	t.Run("integer epoch millis", func(t *testing.T) {
		got := formatTimestamp(nbt.Long(1700000000000))
		assert.Equal(t, fmt.Sprintf("1700000000000 (%s)", localDate(1700000000000)), got)
	})
	t.Run("double epoch millis", func(t *testing.T) {
		got := formatTimestamp(nbt.Double(1700000000000))
		assert.Equal(t, fmt.Sprintf("1.7e+12 (%s)", localDate(1700000000000)), got)
	})
	t.Run("non-numeric passes through", func(t *testing.T) {
		assert.Equal(t, "yesterday", formatTimestamp(nbt.String("yesterday")))
	})
	t.Run("out of range epoch degrades", func(t *testing.T) {
		got := formatTimestamp(nbt.Long(999999999999999999))
		assert.Contains(t, got, "999999999999999999 (error formatting date: year")
		assert.Contains(t, got, "is out of range)")
	})
	t.Run("compound renders its shape", func(t *testing.T) {
		assert.Equal(t, "compound (1 keys)", formatTimestamp(compound("a", nbt.Int(1))))
	})
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		name string
		in   nbt.Value
		want string
	}{
		{name: "byte", in: nbt.Byte(-3), want: "-3"},
		{name: "short", in: nbt.Short(1024), want: "1024"},
		{name: "int", in: nbt.Int(70000), want: "70000"},
		{name: "long", in: nbt.Long(1 << 40), want: "1099511627776"},
		{name: "float", in: nbt.Float(2.5), want: "2.5"},
		{name: "double", in: nbt.Double(-0.125), want: "-0.125"},
		{name: "string", in: nbt.String("hello"), want: "hello"},
		{name: "byte array", in: nbt.ByteArray{1, 2, 3, 4}, want: "byte array (4 bytes)"},
		{name: "int array", in: nbt.IntArray{1, 2}, want: "int array (2 entries)"},
		{name: "long array", in: nbt.LongArray{1}, want: "long array (1 entries)"},
		{name: "list", in: &nbt.List{ElemTag: nbt.TagString, Items: []nbt.Value{nbt.String("a")}}, want: "list (1 entries)"},
		{name: "compound", in: compound("a", nbt.Int(1), "b", nbt.Int(2)), want: "compound (2 keys)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scalarString(tt.in))
		})
	}
}

func TestScalarValue(t *testing.T) {
	v := scalarValue(nbt.Int(7))
	n, ok := v.(int64)
	require.True(t, ok, "integer kinds keep their numeric form")
	assert.Equal(t, int64(7), n)

	assert.Equal(t, "x", scalarValue(nbt.String("x")))
	assert.Equal(t, "2.5", scalarValue(nbt.Float(2.5)))
}
