// Package rdfadmin implements an administrative interface for RDF statements stored in an sql database.
package rdfadmin

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/FAU-CDI/rdfadmin/internal/loader"
)

// cspell:words nquads ntriples

// Extensions maps file extensions to the format of files with that extension.
var Extensions = map[string]loader.Format{
	".nq":  loader.NQuads,
	".nt":  loader.NTriples,
	".ttl": loader.Turtle,
}

// Source is a single file to load statements from.
type Source struct {
	Path   string
	Format loader.Format
}

var errNoArgs = errors.New("need at least one file or directory")

// FindSources finds the sources for the given paths.
//
// Each path may either be a file with a known extension, or a directory.
// Directories are searched (non-recursively) for files with a known extension.
// FindSources does not guarantee that contents are loadable.
func FindSources(argv ...string) (sources []Source, err error) {
	if len(argv) == 0 {
		return nil, errNoArgs
	}

	for _, path := range argv {
		isDir, err := isDirectory(path)
		if err != nil {
			return nil, err
		}

		if !isDir {
			source, err := newSource(path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, source)
			continue
		}

		found, err := findInDirectory(path)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no '*.nq', '*.nt' or '*.ttl' files in %q", path)
		}
		sources = append(sources, found...)
	}

	return sources, nil
}

func findInDirectory(base string) (sources []Source, err error) {
	for _, ext := range slices.Sorted(maps.Keys(Extensions)) {
		matches, err := filepath.Glob(filepath.Join(base, "*"+ext))
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			ok, err := isFile(match)
			if err != nil {
				return nil, err
			}
			if ok {
				sources = append(sources, Source{Path: match, Format: Extensions[ext]})
			}
		}
	}

	slices.SortFunc(sources, func(a, b Source) int {
		return strings.Compare(a.Path, b.Path)
	})
	return sources, nil
}

func newSource(path string) (Source, error) {
	ok, err := isFile(path)
	if err != nil {
		return Source{}, err
	}
	if !ok {
		return Source{}, fmt.Errorf("%q is not a regular file", path)
	}

	format, ok := Extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Source{}, fmt.Errorf("%q: unknown file extension", path)
	}
	return Source{Path: path, Format: format}, nil
}

func isDirectory(path string) (ok bool, err error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stats.Mode().IsDir(), nil
}

// isFile checks if path is a regular file.
func isFile(path string) (ok bool, err error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stats.Mode().IsRegular(), nil
}
