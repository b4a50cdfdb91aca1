package archive

import (
	"io"
	"os"
)

// Counting selects how index line numbers are derived.
type Counting int

const (
	// LegacyCounting adds a fixed 2 for each closing block, which reproduces
	// the numbering of previously generated archives. Files that end with a
	// newline drift the following entries by one line each.
	LegacyCounting Counting = iota
	// PhysicalCounting counts the newlines actually written, so line Start
	// is the opening marker and line End-1 is the closing marker.
	PhysicalCounting
)

func (c Counting) String() string {
	switch c {
	case LegacyCounting:
		return "legacy"
	case PhysicalCounting:
		return "physical"
	default:
		return "unknown"
	}
}

// Marker and index formats of the archive.
const (
	IndexHeader   = "Índice:\n"
	indexLine     = "- %s (linhas %d-%d)\n"
	indexTrailer  = "\n\n"
	openMarker    = "<DOCUMENT filename=\"%s\">\n"
	closeBlock    = "\n</DOCUMENT>\n\n"
	errorLine     = "### ERRO AO LER ARQUIVO: %s\n"
	closeIncrease = 2
)

// IndexEntry locates one archived file inside the content section. Lines
// are 1-based and relative to the first line after the index.
type IndexEntry struct {
	Path  string // Label relative to the base directory, slash separated.
	Start int    // Line of the opening marker.
	End   int    // Counter value after the closing block.
}

// Result describes a completed archive.
type Result struct {
	Path    string       // Location of the final artifact.
	Entries []IndexEntry // Index entries in archive order.
	Failed  int          // Sources written as an error line.
}

// Options configures an Archiver.
type Options struct {
	// BaseDir is the directory labels are made relative to. Defaults to the
	// working directory.
	BaseDir string
	// Counting selects the line accounting mode.
	Counting Counting
	// Open opens a source file. Defaults to os.Open.
	Open func(name string) (io.ReadCloser, error)
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
