package schematic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/schemtools/scheminfo/nbt"
)

// extractMetadata renders the root Metadata compound, deferring the nested
// WorldEdit compound to extractWorldEditMetadata. EnclosingSize is the
// coordinate key of this pass and the Time* keys are millisecond epochs.
func extractMetadata(root *nbt.Compound, res *Result, rep *Report) {
	metadata, ok := root.GetCompound("Metadata")
	if !ok {
		return
	}
	rep.Blank()
	rep.Addf("Metadata:")
	res.Metadata = map[string]any{}
	walkMetadata(metadata, "EnclosingSize", "WorldEdit", true, res.Metadata, rep)
}

// extractWorldEditMetadata renders Metadata.WorldEdit with Origin as the
// coordinate key. Timestamps get no special treatment here.
func extractWorldEditMetadata(root *nbt.Compound, res *Result, rep *Report) {
	metadata, ok := root.GetCompound("Metadata")
	if !ok {
		return
	}
	we, ok := metadata.GetCompound("WorldEdit")
	if !ok {
		return
	}
	rep.Blank()
	rep.Addf("WorldEdit Metadata:")
	res.WorldEditMeta = map[string]any{}
	walkMetadata(we, "Origin", "", false, res.WorldEditMeta, rep)
}

// walkMetadata applies the shared per-key rendering: coordinate compounds
// through the coordinate formatter, timestamps through the epoch formatter,
// other compounds as a one-level "[complex object]" key listing, and
// everything else through the scalar conversion. Depth is capped at one
// extra level; nested values are never recursed into.
func walkMetadata(c *nbt.Compound, coordKey, skipKey string, timestamps bool, dst map[string]any, rep *Report) {
	for _, key := range c.Keys() {
		if skipKey != "" && key == skipKey {
			continue
		}
		v, _ := c.Get(key)
		compound, isCompound := v.(*nbt.Compound)
		switch {
		case key == coordKey && isCompound:
			s := formatCoordinates(compound)
			rep.Addf("  %s: %s", key, s)
			dst[key] = s
		case timestamps && (key == "TimeCreated" || key == "TimeModified"):
			s := formatTimestamp(v)
			rep.Addf("  %s: %s", key, s)
			dst[key] = s
		case isCompound:
			keys := compoundKeys(compound)
			rep.Addf("  %s: [complex object]", key)
			rep.Addf("    Keys: %s", strings.Join(keys, ", "))
			dst[key] = map[string]any{"keys": keys}
		default:
			s := scalarString(v)
			rep.Addf("  %s: %s", key, s)
			dst[key] = s
		}
	}
}

// formatCoordinates renders a {x,y,z} compound as "x x y x z". Each axis
// degrades to "?" independently when absent or not numeric.
func formatCoordinates(c *nbt.Compound) string {
	return axis(c, "x") + " x " + axis(c, "y") + " x " + axis(c, "z")
}

func axis(c *nbt.Compound, name string) string {
	v, ok := c.Get(name)
	if !ok {
		return "?"
	}
	if _, ok := intValue(v); ok {
		return scalarString(v)
	}
	if _, ok := floatValue(v); ok {
		return scalarString(v)
	}
	return "?"
}

// formatTimestamp renders a millisecond-epoch value as "raw (local date)".
// Non-numeric values pass through as their plain string form; an epoch whose
// year falls outside the printable calendar degrades to an error note
// instead of failing.
func formatTimestamp(v nbt.Value) string {
	if ms, ok := intValue(v); ok {
		return formatEpochMillis(scalarString(v), ms)
	}
	if f, ok := floatValue(v); ok {
		return formatEpochMillis(scalarString(v), int64(f))
	}
	return scalarString(v)
}

func formatEpochMillis(raw string, ms int64) string {
	t := time.UnixMilli(ms)
	if y := t.Year(); y < 1 || y > 9999 {
		return fmt.Sprintf("%s (error formatting date: year %d is out of range)", raw, y)
	}
	return fmt.Sprintf("%s (%s)", raw, t.Format("2006-01-02 15:04:05"))
}

func intValue(v nbt.Value) (int64, bool) {
	switch n := v.(type) {
	case nbt.Byte:
		return int64(n), true
	case nbt.Short:
		return int64(n), true
	case nbt.Int:
		return int64(n), true
	case nbt.Long:
		return int64(n), true
	}
	return 0, false
}

func floatValue(v nbt.Value) (float64, bool) {
	switch n := v.(type) {
	case nbt.Float:
		return float64(n), true
	case nbt.Double:
		return float64(n), true
	}
	return 0, false
}

// scalarString converts any node to a plain display string and never fails.
// Sequence kinds summarize their shape; their contents are not dumped.
func scalarString(v nbt.Value) string {
	switch n := v.(type) {
	case nbt.Byte:
		return strconv.FormatInt(int64(n), 10)
	case nbt.Short:
		return strconv.FormatInt(int64(n), 10)
	case nbt.Int:
		return strconv.FormatInt(int64(n), 10)
	case nbt.Long:
		return strconv.FormatInt(int64(n), 10)
	case nbt.Float:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case nbt.Double:
		return strconv.FormatFloat(float64(n), 'g', -1, 64)
	case nbt.String:
		return string(n)
	case nbt.ByteArray:
		return fmt.Sprintf("byte array (%d bytes)", len(n))
	case nbt.IntArray:
		return fmt.Sprintf("int array (%d entries)", len(n))
	case nbt.LongArray:
		return fmt.Sprintf("long array (%d entries)", len(n))
	case *nbt.List:
		return fmt.Sprintf("list (%d entries)", n.Len())
	case *nbt.Compound:
		return fmt.Sprintf("compound (%d keys)", n.Len())
	}
	return fmt.Sprintf("%v", v)
}

// scalarValue keeps integer ids as numbers for the structured record and
// falls back to the display string for everything else.
func scalarValue(v nbt.Value) any {
	if n, ok := intValue(v); ok {
		return n
	}
	return scalarString(v)
}

// compoundKeys copies the key names; Keys' backing slice is shared with the
// compound.
func compoundKeys(c *nbt.Compound) []string {
	return append([]string(nil), c.Keys()...)
}
