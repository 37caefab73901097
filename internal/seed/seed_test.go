package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ParsesAndValidates(t *testing.T) {
	cat := Default()

	require.Len(t, cat.Categories, 5)
	require.Len(t, cat.Products, 2)

	assert.Equal(t, "Áo", cat.Categories[0].Name)
	assert.Equal(t, "Áo sơ mi", cat.Products[0].Name)
	assert.Equal(t, "250000", cat.Products[0].Price)
	assert.Equal(t, "admin", cat.Admin.Username)
}

func TestValidate_RejectsEmptyName(t *testing.T) {
	cat := Default()
	cat.Categories[0].Name = ""

	err := Validate(cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed schema violation")
}

func TestValidate_RejectsNonNumericPrice(t *testing.T) {
	cat := Default()
	cat.Products[0].Price = "cheap"

	err := Validate(cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed schema violation")
}

func TestValidate_RejectsUnknownCategoryReference(t *testing.T) {
	cat := Default()
	cat.Products[0].Category = 99

	err := Validate(cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestValidate_RejectsNonPositiveID(t *testing.T) {
	cat := Default()
	cat.Categories[0].ID = 0

	require.Error(t, Validate(cat))
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, defaultCatalogYAML, 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cat)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [half"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
}
