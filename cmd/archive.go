package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"arquivao/pkg/archive"
	"arquivao/pkg/collect"
	"arquivao/pkg/config"
	"arquivao/pkg/ignore"
	"arquivao/pkg/tree"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runArchive collects the files under the root, archives them and reports
// the output path.
func runArchive(cmd *cobra.Command, opts *rootOptions, logger *zap.Logger) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger.Debug("Resolved configuration",
		zap.String("root", opts.root),
		zap.String("output", cfg.Output),
		zap.Strings("excludedDirs", cfg.Exclusions.Dirs),
		zap.Strings("excludedFiles", cfg.Exclusions.Files),
	)

	var matcher collect.Matcher
	if cfg.IgnoreFile != "" {
		m, err := ignore.Load(cfg.IgnoreFile, logger)
		if err != nil {
			return fmt.Errorf("failed to load ignore patterns: %w", err)
		}
		matcher = m
	}

	collector := collect.New(cfg.Exclusions, matcher, logger)
	// Never archive our own artifacts from a previous run.
	for _, artifact := range []string{cfg.Output, cfg.Tree} {
		if artifact == "" {
			continue
		}
		if err := collector.SkipPath(artifact); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", artifact, err)
		}
	}

	files, err := collector.Collect(opts.root)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	sort.Strings(files)

	counting := archive.LegacyCounting
	if cfg.PhysicalLines {
		counting = archive.PhysicalCounting
	}
	archiver, err := archive.New(archive.Options{Counting: counting}, logger)
	if err != nil {
		return err
	}

	res, err := archiver.Write(files, cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	if cfg.Tree != "" {
		if err := writeTree(opts.root, files, cfg.Tree, logger); err != nil {
			return fmt.Errorf("failed to write tree structure: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Arquivão gerado com índice: %s\n", res.Path)
	return nil
}

// resolveConfig loads the config file, if any, and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("ignore-file") {
		cfg.IgnoreFile = opts.ignoreFile
	}
	if flags.Changed("tree") {
		cfg.Tree = opts.tree
	}
	if flags.Changed("physical-lines") {
		cfg.PhysicalLines = opts.physicalLines
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// writeTree renders the archived files, relative to root, into path.
func writeTree(root string, files []string, path string, logger *zap.Logger) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			rel = f
		}
		rels = append(rels, filepath.ToSlash(rel))
	}

	if err := os.WriteFile(path, []byte(tree.Render(filepath.Base(absRoot), rels)), 0o644); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
