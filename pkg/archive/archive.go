// File: pkg/archive/archive.go
package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Archiver merges source files into one indexed text artifact.
type Archiver struct {
	baseDir  string
	counting Counting
	open     func(name string) (io.ReadCloser, error)
	logger   *zap.Logger
}

// New creates an Archiver.
func New(opts Options, logger *zap.Logger) (*Archiver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	open := opts.Open
	if open == nil {
		open = openFile
	}

	return &Archiver{
		baseDir:  absBase,
		counting: opts.Counting,
		open:     open,
		logger:   logger,
	}, nil
}

// Write archives files, in the given order, into outputPath.
//
// The content is first written to an intermediate file next to the output
// while the index is accounted, then the index and the intermediate content
// are written to outputPath. Unreadable sources become an error line inside
// their block. Failures on the intermediate or output file abort the run.
func (a *Archiver) Write(files []string, outputPath string) (*Result, error) {
	startTime := time.Now()
	a.logger.Info("Starting archive", zap.String("output", outputPath), zap.Int("files", len(files)), zap.Stringer("counting", a.counting))

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		a.logger.Error("Failed to create intermediate file", zap.String("output", outputPath), zap.Error(err))
		return nil, fmt.Errorf("failed to create intermediate file: %w", err)
	}
	defer func() {
		if err := tmp.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			a.logger.Warn("Failed to close intermediate file", zap.String("file", tmp.Name()), zap.Error(err))
		}
		if err := os.Remove(tmp.Name()); err != nil {
			a.logger.Warn("Failed to remove intermediate file", zap.String("file", tmp.Name()), zap.Error(err))
		}
	}()

	entries, failed, err := a.writeContent(tmp, files)
	if err != nil {
		a.logger.Error("Failed to write archive content", zap.String("file", tmp.Name()), zap.Error(err))
		return nil, fmt.Errorf("failed to write content: %w", err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind intermediate file: %w", err)
	}

	if err := a.writeFinal(outputPath, entries, tmp); err != nil {
		a.logger.Error("Failed to write archive", zap.String("output", outputPath), zap.Error(err))
		return nil, err
	}

	a.logger.Info("Archive written",
		zap.String("output", outputPath),
		zap.Int("entries", len(entries)),
		zap.Int("unreadable", failed),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return &Result{Path: outputPath, Entries: entries, Failed: failed}, nil
}

// lineWriter counts the newlines that reach the underlying writer.
type lineWriter struct {
	w     *bufio.Writer
	lines int
}

func (lw *lineWriter) writeString(s string) error {
	n, err := lw.w.WriteString(s)
	lw.lines += strings.Count(s[:n], "\n")
	return err
}

func (lw *lineWriter) printf(format string, args ...any) error {
	return lw.writeString(fmt.Sprintf(format, args...))
}

// writeContent writes every block to w and returns the index entries along
// with the number of sources that could not be read.
func (a *Archiver) writeContent(w io.Writer, files []string) ([]IndexEntry, int, error) {
	lw := &lineWriter{w: bufio.NewWriter(w)}
	entries := make([]IndexEntry, 0, len(files))
	counter := 0
	failed := 0

	for _, path := range files {
		label := a.label(path)
		start := counter + 1
		physicalStart := lw.lines + 1

		if err := lw.printf(openMarker, label); err != nil {
			return nil, failed, err
		}
		counter++

		lines, readErr := a.readLines(path)
		if readErr != nil {
			failed++
			a.logger.Warn("Failed to read file, writing error line", zap.String("filePath", path), zap.Error(readErr))
			if err := lw.printf(errorLine, singleLine(readErr.Error())); err != nil {
				return nil, failed, err
			}
			counter++
		}
		for _, line := range lines {
			if err := lw.writeString(line); err != nil {
				return nil, failed, err
			}
			counter++
		}

		if err := lw.writeString(closeBlock); err != nil {
			return nil, failed, err
		}
		counter += closeIncrease

		entry := IndexEntry{Path: label, Start: start, End: counter}
		if a.counting == PhysicalCounting {
			entry.Start, entry.End = physicalStart, lw.lines
		}
		entries = append(entries, entry)
		a.logger.Debug("Archived file", zap.String("label", label), zap.Int("start", entry.Start), zap.Int("end", entry.End))
	}

	if err := lw.w.Flush(); err != nil {
		return nil, failed, err
	}
	return entries, failed, nil
}

// writeFinal writes the index followed by the content read from content.
func (a *Archiver) writeFinal(outputPath string, entries []IndexEntry, content io.Reader) (err error) {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(out)
	if err := writeIndex(bw, entries); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	if _, err := io.Copy(bw, content); err != nil {
		return fmt.Errorf("failed to copy content: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func writeIndex(w io.Writer, entries []IndexEntry) error {
	if _, err := io.WriteString(w, IndexHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, indexLine, e.Path, e.Start, e.End); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, indexTrailer)
	return err
}

// label returns path relative to the base directory, or path itself when no
// relative form exists.
func (a *Archiver) label(path string) string {
	abs, err := filepath.Abs(path)
	if err == nil {
		if rel, relErr := filepath.Rel(a.baseDir, abs); relErr == nil {
			return filepath.ToSlash(rel)
		}
	}
	a.logger.Warn("Unable to determine relative path, using path as given", zap.String("filePath", path))
	return filepath.ToSlash(path)
}
