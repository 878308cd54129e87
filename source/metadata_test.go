package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadataYAML = `records:
  - code: Axxxxx
    title: Agriculture, Forestry and Fishing
  - code: A0111x
    title: Growing of cereals, leguminous crops and oil seeds
    detail: This class includes growing of cereals
    includes:
      - growing of wheat
      - growing of barley
    excludes:
      - growing of rice
`

func TestReadMetadata(t *testing.T) {
	records, err := ReadMetadata(strings.NewReader(metadataYAML))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Axxxxx", records[0].Code)
	assert.Equal(t, "Agriculture, Forestry and Fishing", records[0].Title)

	assert.Equal(t, "A0111x", records[1].Code)
	assert.Equal(t, "This class includes growing of cereals", records[1].Detail)
	assert.Equal(t, []string{"growing of wheat", "growing of barley"}, records[1].Includes)
	assert.Equal(t, []string{"growing of rice"}, records[1].Excludes)
}

func TestReadMetadataInvalid(t *testing.T) {
	_, err := ReadMetadata(strings.NewReader("records: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse metadata")
}

func TestLoadMetadataGlob(t *testing.T) {
	dir := t.TempDir()

	// Written out of order; the glob loads shards in sorted path order.
	writeFile(t, filepath.Join(dir, "b.yaml"), "records:\n  - code: B05xxx\n    title: Mining of coal\n")
	writeFile(t, filepath.Join(dir, "a.yaml"), "records:\n  - code: A01xxx\n    title: Crop and animal production\n")

	records, err := LoadMetadataGlob([]string{filepath.Join(dir, "*.yaml")})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A01xxx", records[0].Code)
	assert.Equal(t, "B05xxx", records[1].Code)
}

func TestLoadMetadataGlobNoMatch(t *testing.T) {
	_, err := LoadMetadataGlob([]string{filepath.Join(t.TempDir(), "*.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestResolveFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.yaml")
	writeFile(t, path, "records: []\n")

	files, err := ResolveFiles([]string{path, filepath.Join(dir, "*.yaml")})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestResolveFilesDirectoryRejected(t *testing.T) {
	_, err := ResolveFiles([]string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is a directory")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
