package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsafe/internal/fileutil"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidExclude is returned for a malformed exclude pattern.
var ErrInvalidExclude = errors.New("invalid exclude pattern")

// FileToRender pairs a markdown source with its output path.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the markdown files under inputPath. A single file
// must carry a markdown extension; directories are walked recursively and
// their non-markdown files skipped. Exclude patterns match paths relative
// to inputPath, with forward slashes; an excluded directory is not entered.
func discoverFiles(inputPath, outputDir, ext string, exclude []string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := fileutil.ValidateMarkdown(inputPath); err != nil {
			return nil, err
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "", ext)
		if err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if path != inputPath && isExcluded(exclude, inputPath, path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath, ext)
		if err != nil {
			return err
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines where a markdown file renders to. Without
// an output directory the result sits next to the source. An output path
// ending in ext names the target file directly. Otherwise the layout
// below baseInputDir is mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) (string, error) {
	name, err := fileutil.ReplaceExtension(filepath.Base(inputPath), ext)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name), nil
	}

	if strings.HasSuffix(outputDir, ext) {
		return outputDir, nil
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name), nil
		}
	}

	return filepath.Join(outputDir, name), nil
}

// validateExcludes checks every exclude pattern.
func validateExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %q", ErrInvalidExclude, p)
		}
	}
	return nil
}

// isExcluded reports whether path, below root, matches any pattern.
func isExcluded(patterns []string, root, path string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
