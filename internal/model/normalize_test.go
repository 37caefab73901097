package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_StripsDiacritics(t *testing.T) {
	assert.Equal(t, "aosomi", Fold("Áo sơ mi"))
	assert.Equal(t, "giaysneaker", Fold("Giày sneaker"))
	assert.Equal(t, "mu", Fold("Mũ"))
}

func TestFold_StripsWhitespace(t *testing.T) {
	assert.Equal(t, "aokhoac", Fold("  áo   khoác  "))
	assert.Equal(t, "ab", Fold("a\tb"))
}

func TestFold_LowerCasesPlainASCII(t *testing.T) {
	assert.Equal(t, "sneaker", Fold("SNEAKER"))
}

func TestFold_EmptyString(t *testing.T) {
	assert.Equal(t, "", Fold(""))
}

func TestFoldContains(t *testing.T) {
	assert.True(t, FoldContains("Áo sơ mi", "ao"))
	assert.True(t, FoldContains("Áo sơ mi", "SO MI"))
	assert.True(t, FoldContains("Giày sneaker", "giay"))
	assert.False(t, FoldContains("Balo", "giay"))

	// Empty needle matches everything
	assert.True(t, FoldContains("anything", ""))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole(" Admin "))
	assert.Equal(t, RoleAdmin, NormalizeRole("ADMIN"))
	assert.Equal(t, RoleUser, NormalizeRole("user\n"))
	assert.Equal(t, Role(""), NormalizeRole("   "))
}
