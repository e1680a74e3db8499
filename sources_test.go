package rdfadmin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FAU-CDI/rdfadmin"
	"github.com/FAU-CDI/rdfadmin/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ttl", "a.nq", "c.nt", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.nq"), 0o755))

	empty := t.TempDir()

	t.Run("directory", func(t *testing.T) {
		sources, err := rdfadmin.FindSources(dir)
		require.NoError(t, err)
		assert.Equal(t, []rdfadmin.Source{
			{Path: filepath.Join(dir, "a.nq"), Format: loader.NQuads},
			{Path: filepath.Join(dir, "b.ttl"), Format: loader.Turtle},
			{Path: filepath.Join(dir, "c.nt"), Format: loader.NTriples},
		}, sources)
	})

	t.Run("files", func(t *testing.T) {
		sources, err := rdfadmin.FindSources(filepath.Join(dir, "c.nt"), filepath.Join(dir, "a.nq"))
		require.NoError(t, err)
		assert.Equal(t, []rdfadmin.Source{
			{Path: filepath.Join(dir, "c.nt"), Format: loader.NTriples},
			{Path: filepath.Join(dir, "a.nq"), Format: loader.NQuads},
		}, sources)
	})

	t.Run("errors", func(t *testing.T) {
		for _, argv := range [][]string{
			nil,
			{filepath.Join(dir, "readme.txt")},
			{filepath.Join(dir, "missing.nq")},
			{empty},
		} {
			_, err := rdfadmin.FindSources(argv...)
			assert.Error(t, err, "%v", argv)
		}
	})
}
