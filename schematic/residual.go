package schematic

import (
	"strings"

	"github.com/schemtools/scheminfo/nbt"
)

// reservedRootKeys are root children already consumed by the format probes
// and the dedicated sections; everything else is surfaced as additional
// data. Dimension keys are not reserved, so Width/Height/Length show up
// here too.
var reservedRootKeys = map[string]bool{
	"Palette":   true,
	"BlockData": true,
	"Blocks":    true,
	"Data":      true,
	"Regions":   true,
	"Metadata":  true,
}

// reportResiduals lists root keys no other section claimed, in document
// order. Compounds are summarized one level deep; scalars print their plain
// form. The structured record keeps the names only, and only when there is
// at least one.
func reportResiduals(root *nbt.Compound, res *Result, rep *Report) {
	rep.Blank()
	rep.Addf("Additional NBT Data:")
	var extra []string
	for _, key := range root.Keys() {
		if reservedRootKeys[key] {
			continue
		}
		extra = append(extra, key)
		v, _ := root.Get(key)
		if compound, ok := v.(*nbt.Compound); ok {
			rep.Addf("  %s: [complex object]", key)
			rep.Addf("    Keys: %s", strings.Join(compound.Keys(), ", "))
			continue
		}
		rep.Addf("  %s: %s", key, scalarString(v))
	}
	if len(extra) == 0 {
		rep.Addf("  No additional NBT data found")
		return
	}
	res.AdditionalKeys = extra
}
