package schematic

import (
	"fmt"
	"path/filepath"
	"time"
)

// Result is the structured record produced for one analyzed file. Field names
// are stable: downstream consumers read the JSON by key. Optional sections
// use pointers or nil maps so that "absent" and "present but zero" remain
// distinguishable, mirroring the report text.
type Result struct {
	FileName         string                 `json:"file_name"`
	FilePath         string                 `json:"file_path"`
	FileSize         int64                  `json:"file_size"`
	AnalysisTime     string                 `json:"analysis_time"`
	Compression      string                 `json:"compression,omitempty"`
	DecompressedSize *int                   `json:"decompressed_size,omitempty"`
	Format           Format                 `json:"format,omitempty"`
	Dimensions       *DimensionInfo         `json:"dimensions,omitempty"`
	Regions          map[string]*RegionInfo `json:"regions,omitempty"`
	BlockStats       any                    `json:"block_stats,omitempty"`
	BlockDataSize    *int                   `json:"block_data_size,omitempty"`
	TileEntities     *int                   `json:"tile_entities_count,omitempty"`
	Entities         *int                   `json:"entities_count,omitempty"`
	Metadata         map[string]any         `json:"metadata,omitempty"`
	WorldEditMeta    map[string]any         `json:"worldedit_metadata,omitempty"`
	AdditionalKeys   []string               `json:"additional_nbt_keys,omitempty"`
	PaletteUsage     *PaletteUsage          `json:"palette_usage,omitempty"`
	Error            string                 `json:"error,omitempty"`
}

// NewResult seeds the per-file record with its identity fields.
func NewResult(path string) *Result {
	return &Result{
		FileName:     filepath.Base(path),
		FilePath:     path,
		AnalysisTime: time.Now().Format("2006-01-02 15:04:05"),
	}
}

// DimensionInfo describes a single-cuboid schematic. Volume is zero whenever
// any axis is missing or not positive.
type DimensionInfo struct {
	Width       int64 `json:"width"`
	Height      int64 `json:"height"`
	Length      int64 `json:"length"`
	TotalVolume int64 `json:"total_volume"`
}

// RegionInfo describes one litematica region. Entity counts are only present
// when the source list exists and is non-empty; partial-data producers omit
// them entirely.
type RegionInfo struct {
	Size          string `json:"size,omitempty"`
	Position      string `json:"position,omitempty"`
	BlockEntities *int   `json:"block_entities_count,omitempty"`
	Entities      *int   `json:"entities_count,omitempty"`
}

// PaletteStats is the block_stats shape for the modern WorldEdit formats:
// the palette is dumped in full, never sampled or truncated.
type PaletteStats struct {
	TotalBlockTypes int            `json:"total_block_types"`
	Blocks          []PaletteEntry `json:"blocks"`
	Error           string         `json:"error,omitempty"`
}

// PaletteEntry is one palette mapping. ID is an int64 for the usual integer
// ids and falls back to the value's string form for malformed palettes.
type PaletteEntry struct {
	Name string `json:"name"`
	ID   any    `json:"id"`
}

// ClassicStats is the block_stats shape for the classic WorldEdit format.
// TotalBlocks is an int when the Blocks node has a countable shape and the
// string "unknown" otherwise.
type ClassicStats struct {
	TotalBlocks any `json:"total_blocks"`
}

// PaletteUsage summarizes which palette entries the block data actually
// references.
type PaletteUsage struct {
	TotalBlocks int      `json:"total_blocks"`
	UsedTypes   int      `json:"used_types"`
	UnusedTypes []string `json:"unused_types,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Report accumulates the human-readable lines for one file. It is filled in
// the same pass as the Result but kept independent of it, so either artifact
// can be inspected on its own.
type Report struct {
	lines []string
}

// Addf appends one formatted line.
func (r *Report) Addf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Blank appends an empty line, the section separator.
func (r *Report) Blank() {
	r.lines = append(r.lines, "")
}

// Lines returns the accumulated lines in order.
func (r *Report) Lines() []string {
	return r.lines
}
