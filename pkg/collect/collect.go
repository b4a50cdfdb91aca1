// File: pkg/collect/collect.go
package collect

import (
	"io/fs"
	"os"
	"path/filepath"

	"arquivao/pkg/config"

	"go.uber.org/zap"
)

// Matcher reports whether a root-relative path should be left out.
type Matcher interface {
	MatchesPath(relPath string, isDir bool) bool
}

// Collector walks a directory tree and gathers the files to archive.
type Collector struct {
	dirs    map[string]struct{}
	files   map[string]struct{}
	matcher Matcher
	skip    map[string]struct{} // cleaned absolute paths
	logger  *zap.Logger
}

// New builds a Collector from the exclusion sets. matcher may be nil.
func New(excl config.Exclusions, matcher Matcher, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		dirs:    toSet(excl.Dirs),
		files:   toSet(excl.Files),
		matcher: matcher,
		skip:    map[string]struct{}{},
		logger:  logger,
	}
}

// SkipPath leaves out the file at exactly this location, whatever its name
// matches elsewhere in the tree. Relative paths resolve against the working
// directory.
func (c *Collector) SkipPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	c.skip[abs] = struct{}{}
	return nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Collect walks root top-down and returns every file that survives the
// exclusion rules, as root-joined paths. The order is unspecified; callers
// sort before archiving. A missing or empty root yields no files.
func (c *Collector) Collect(root string) ([]string, error) {
	var files []string
	c.logger.Debug("Starting file collection", zap.String("root", root))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}

		if path == root {
			return nil
		}
		name := d.Name()

		if d.IsDir() {
			if _, skip := c.dirs[name]; skip {
				c.logger.Debug("Skipping excluded directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			if c.matches(root, path, true) {
				c.logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !c.isFileLike(path, d) {
			c.logger.Debug("Skipping non-regular file", zap.String("filePath", path), zap.Stringer("mode", d.Type()))
			return nil
		}
		if _, skip := c.files[name]; skip {
			c.logger.Debug("Skipping excluded file", zap.String("filePath", path))
			return nil
		}
		if c.matches(root, path, false) {
			c.logger.Debug("Skipping ignored file", zap.String("filePath", path))
			return nil
		}
		if c.skipped(path) {
			c.logger.Debug("Skipping file at excluded path", zap.String("filePath", path))
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		c.logger.Error("Error during file traversal", zap.Error(err))
		return files, err
	}

	c.logger.Debug("Completed file collection", zap.Int("files", len(files)))
	return files, nil
}

func (c *Collector) skipped(path string) bool {
	if len(c.skip) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := c.skip[abs]
	return ok
}

func (c *Collector) matches(root, path string, isDir bool) bool {
	if c.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return c.matcher.MatchesPath(rel, isDir)
}

// isFileLike accepts regular files and symlinks that do not resolve to a
// directory. Broken links are kept so their read failure shows up in the
// archive.
func (c *Collector) isFileLike(path string, d fs.DirEntry) bool {
	mode := d.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return !info.IsDir()
}
