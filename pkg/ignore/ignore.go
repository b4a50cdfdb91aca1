package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// Matcher matches root-relative paths against gitignore-syntax patterns.
// A nil or empty Matcher never matches.
type Matcher struct {
	matcher  gitignore.Matcher
	patterns int
	logger   *zap.Logger
}

// Load reads a pattern file. A missing file yields an empty matcher and no error.
func Load(path string, logger *zap.Logger) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return &Matcher{logger: logger}, nil
		}
		logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	m := FromLines(logger, strings.Split(string(content), "\n")...)
	logger.Debug("Compiled ignore patterns", zap.String("filePath", path), zap.Int("patternCount", m.patterns))
	return m, nil
}

// FromLines compiles pattern lines. Blank lines and comments are skipped.
func FromLines(logger *zap.Logger, lines ...string) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	var patterns []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	m := &Matcher{patterns: len(patterns), logger: logger}
	if len(patterns) > 0 {
		m.matcher = gitignore.NewMatcher(patterns)
	}
	return m
}

// MatchesPath reports whether the root-relative path is ignored.
func (m *Matcher) MatchesPath(relPath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(relPath)
	if len(segments) == 0 {
		return false
	}
	matched := m.matcher.Match(segments, isDir)
	if matched {
		m.logger.Debug("Path matches ignore pattern", zap.String("path", relPath), zap.Bool("isDir", isDir))
	}
	return matched
}

// splitPath splits a path into its non-empty segments, dropping ".".
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
