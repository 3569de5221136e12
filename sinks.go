package main

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/schemtools/scheminfo/schematic"
)

// resultSink receives every analysis result in file order. Sinks are
// append-oriented; the JSON list output is written separately at the end of
// the run because its format is a single document.
type resultSink interface {
	Write(res *schematic.Result) error
	Close() error
}

// logSink writes the human-readable reports to the run's log file, one block
// per analyzed file.
type logSink struct {
	f *os.File
	w *bufio.Writer
}

// newLogSink truncates path and writes the run header.
func newLogSink(path string, argv []string) (*logSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	_, _ = w.WriteString("Schematic Analysis Log - " + time.Now().Format("2006-01-02 15:04:05") + "\n")
	_, _ = w.WriteString("Command: " + strings.Join(argv, " ") + "\n\n")
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &logSink{f: f, w: w}, nil
}

func (s *logSink) WriteReport(lines []string) error {
	if _, err := s.w.WriteString(strings.Join(lines, "\n")); err != nil {
		return err
	}
	_, err := s.w.WriteString("\n\n")
	return err
}

func (s *logSink) Close() error {
	if err := s.w.Flush(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}

// writeJSONList serializes the results of the whole run as one indented JSON
// array.
func writeJSONList(path string, results []*schematic.Result) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// jsonlSink appends one JSON document per result. A path ending in .zst gets
// transparent zstd framing.
type jsonlSink struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func newJSONLSink(path string) (*jsonlSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &jsonlSink{f: f}
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		s.enc = enc
		s.w = bufio.NewWriterSize(enc, 128*1024)
	} else {
		s.w = bufio.NewWriterSize(f, 128*1024)
	}
	return s, nil
}

func (s *jsonlSink) Write(res *schematic.Result) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *jsonlSink) Close() error {
	var err error
	if s.w != nil {
		_ = s.w.Flush()
	}
	if s.enc != nil {
		err = s.enc.Close()
	}
	if s.f != nil {
		_ = s.f.Close()
	}
	return err
}
