package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schemtools/scheminfo/schematic"
)

// hasSupportedExtension matches the file name against the configured
// extension filters, case-insensitively.
func hasSupportedExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// processDirectory analyzes every supported file directly inside dir, in
// name order. A nil result slice means the directory held nothing to
// analyze; the caller skips the JSON output in that case.
func processDirectory(a *schematic.Analyzer, dir string, cfg Config, logOut *logSink, sinks []resultSink) ([]*schematic.Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if hasSupportedExtension(e.Name(), cfg.Extensions) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		fmt.Printf("No supported files found in %s\n", dir)
		return nil, nil
	}
	fmt.Printf("Found %d supported files in %s\n", len(files), dir)

	results := make([]*schematic.Result, 0, len(files))
	for _, path := range files {
		res, lines := a.AnalyzeFile(path)
		printReport(lines)
		if err := logOut.WriteReport(lines); err != nil {
			return results, err
		}
		if err := emit(sinks, res); err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func printReport(lines []string) {
	fmt.Println(strings.Join(lines, "\n"))
}

func emit(sinks []resultSink, res *schematic.Result) error {
	for _, s := range sinks {
		if err := s.Write(res); err != nil {
			return err
		}
	}
	return nil
}
