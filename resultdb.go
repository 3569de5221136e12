package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/schemtools/scheminfo/schematic"
)

// resultDB indexes every analysis into a SQLite file, one row per analyzed
// file with the full result kept as JSON for ad-hoc querying.
type resultDB struct {
	db     *sql.DB
	insert *sql.Stmt
}

func openResultDB(path string) (*resultDB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			analysis_time TEXT NOT NULL,
			compression TEXT,
			format TEXT,
			error TEXT,
			result_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_format ON analyses(format);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_file_name ON analyses(file_name);`,
	}
	for _, s := range schema {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	insert, err := db.Prepare(`INSERT INTO analyses(file_name,file_path,file_size,analysis_time,compression,format,error,result_json) VALUES(?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &resultDB{db: db, insert: insert}, nil
}

func (d *resultDB) Write(res *schematic.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = d.insert.Exec(
		res.FileName,
		res.FilePath,
		res.FileSize,
		res.AnalysisTime,
		res.Compression,
		string(res.Format),
		res.Error,
		string(raw),
	)
	return err
}

func (d *resultDB) Close() error {
	_ = d.insert.Close()
	return d.db.Close()
}
