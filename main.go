package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/schemtools/scheminfo/schematic"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:      "scheminfo",
		Usage:     "inspects Minecraft schematic files (.schem, .schematic, .litematic)",
		ArgsUsage: "<file-or-directory>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML configuration file", EnvVars: []string{"SCHEMINFO_CONFIG"}},
			&cli.StringFlag{Name: "log", Usage: "report log file", EnvVars: []string{"SCHEMINFO_LOG"}},
			&cli.StringFlag{Name: "json", Usage: "JSON results file", EnvVars: []string{"SCHEMINFO_JSON"}},
			&cli.StringFlag{Name: "jsonl", Usage: "JSONL results file, zstd-compressed when it ends in .zst", EnvVars: []string{"SCHEMINFO_JSONL"}},
			&cli.StringFlag{Name: "db", Usage: "SQLite results database", EnvVars: []string{"SCHEMINFO_DB"}},
			&cli.BoolFlag{Name: "palette-usage", Usage: "scan block data for unused palette entries", EnvVars: []string{"SCHEMINFO_PALETTE_USAGE"}},
			&cli.BoolFlag{Name: "debug", Usage: "dump decoded NBT trees to stderr", EnvVars: []string{"SCHEMINFO_DEBUG"}},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Usage: scheminfo <file-or-directory> [flags]\nSupported formats: .schem, .schematic, .litematic", 1)
	}
	target := c.Args().Get(0)

	cfg, err := resolveOptions(c)
	if err != nil {
		return err
	}

	logPath := cfg.Log
	if logPath == "" {
		logPath = defaultLogPath()
	}
	jsonPath := cfg.JSON
	if jsonPath == "" {
		jsonPath = replaceExt(logPath, ".json")
	}

	logOut, err := newLogSink(logPath, os.Args)
	if err != nil {
		return err
	}
	defer logOut.Close()

	var sinks []resultSink
	if cfg.JSONL != "" {
		s, err := newJSONLSink(cfg.JSONL)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
	}
	if cfg.DB != "" {
		s, err := openResultDB(cfg.DB)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
	}
	defer func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}()

	analyzer := &schematic.Analyzer{PaletteUsage: cfg.PaletteUsage}
	if cfg.Debug {
		analyzer.DumpTree = os.Stderr
	}

	info, err := os.Stat(target)
	if err != nil {
		return cli.Exit("File or directory not found: "+target, 1)
	}

	var results []*schematic.Result
	if info.IsDir() {
		results, err = processDirectory(analyzer, target, cfg, logOut, sinks)
		if err != nil {
			return err
		}
		if results == nil {
			return nil
		}
	} else {
		res, lines := analyzer.AnalyzeFile(target)
		printReport(lines)
		if err := logOut.WriteReport(lines); err != nil {
			return err
		}
		if err := emit(sinks, res); err != nil {
			return err
		}
		results = []*schematic.Result{res}
	}

	if err := writeJSONList(jsonPath, results); err != nil {
		return err
	}
	fmt.Printf("JSON data written to %s\n", jsonPath)
	return nil
}

// resolveOptions layers explicit flags over the config file over the
// defaults.
func resolveOptions(c *cli.Context) (Config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("log") {
		cfg.Log = c.String("log")
	}
	if c.IsSet("json") {
		cfg.JSON = c.String("json")
	}
	if c.IsSet("jsonl") {
		cfg.JSONL = c.String("jsonl")
	}
	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}
	if c.IsSet("palette-usage") {
		cfg.PaletteUsage = c.Bool("palette-usage")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	return cfg, nil
}

func defaultLogPath() string {
	return "schematic_analysis_" + time.Now().Format("20060102_150405") + ".log"
}

// replaceExt swaps the final extension, or appends when there is none.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
