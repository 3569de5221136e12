// Package schematic inspects Minecraft schematic files. It sniffs the
// container compression, decodes the NBT payload, detects which schematic
// dialect the tree speaks and walks it tolerantly, producing a structured
// result record and a parallel human-readable report. Malformed sections
// degrade to placeholders or per-section error notes; only an unreadable,
// undecompressable or undecodable file aborts its analysis.
package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/schemtools/scheminfo/nbt"
)

// Analyzer carries the per-run options. The zero value analyzes with the
// optional passes disabled.
type Analyzer struct {
	// PaletteUsage enables the block data scan that checks which palette
	// entries are actually referenced. Only runs for modern WorldEdit files.
	PaletteUsage bool

	// DumpTree, when set, receives a full dump of each decoded tree.
	DumpTree io.Writer
}

// AnalyzeFile runs the whole pipeline for one file: read, decompress,
// decode, inspect. It always returns a usable result and report; a fatal
// error is recorded on the result and truncates the report instead of
// propagating.
func (a *Analyzer) AnalyzeFile(path string) (*Result, []string) {
	res := NewResult(path)
	rep := &Report{}
	rep.Blank()
	rep.Addf("=== Analyzing file: %s ===", res.FileName)
	rep.Addf("File path: %s", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fail(res, rep, "Error reading file: %v", err)
	}
	res.FileSize = int64(len(raw))
	rep.Addf("File size: %d bytes", len(raw))

	data, compression, err := decompress(raw)
	res.Compression = compression
	rep.Addf("File compression: %s", compression)
	if err != nil {
		return fail(res, rep, "Error decompressing file: %v", err)
	}
	if compression != compressionNone {
		n := len(data)
		res.DecompressedSize = &n
		rep.Addf("Decompressed size: %d bytes", n)
	}

	root, err := decodeTree(data)
	if err != nil {
		return fail(res, rep, "Error parsing NBT data: %v", err)
	}
	if a.DumpTree != nil {
		spew.Fdump(a.DumpTree, root)
	}

	a.Inspect(root, res, rep)
	return res, rep.Lines()
}

// Inspect detects the format of an already-decoded tree and runs the
// extraction passes over it, appending to res and rep. Callers that decode
// their own trees can use it directly.
func (a *Analyzer) Inspect(root *nbt.Compound, res *Result, rep *Report) {
	format := Detect(root)
	res.Format = format
	rep.Addf("Format: %s", format)

	if format == FormatLitematica {
		extractRegions(root, res, rep)
	} else {
		extractDimensions(root, res, rep)
	}
	extractBlockStats(root, format, res, rep)
	if a.PaletteUsage && format == FormatModernWorldEdit {
		scanPaletteUsage(root, res, rep)
	}
	extractMetadata(root, res, rep)
	extractWorldEditMetadata(root, res, rep)
	reportResiduals(root, res, rep)

	rep.Blank()
	rep.Addf("=== End of analysis ===")
}

func fail(res *Result, rep *Report, format string, args ...any) (*Result, []string) {
	msg := fmt.Sprintf(format, args...)
	res.Error = msg
	rep.Addf("%s", msg)
	return res, rep.Lines()
}
