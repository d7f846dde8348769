package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"texts/Moby Dick.txt", "moby-dick"},
		{"a/b/war_and_peace.TXT", "war-and-peace"},
		{"Война и мир.txt", "война-и-мир"},
		{"--odd--name!.txt", "odd-name"},
		{"https://example.org/books/moby_dick.txt?download=1", "moby-dick"},
		{"https://example.org/", "example-org"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, slugFromPath(tt.path))
		})
	}
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "war and peace", titleFromPath("/x/war_and_peace.txt"))
	assert.Equal(t, "Moby Dick", titleFromPath("Moby Dick.txt"))
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("https://example.org/a.txt"))
	assert.True(t, isURL("http://localhost:8000/a.txt"))
	assert.False(t, isURL("texts/a.txt"))
	assert.False(t, isURL("ftp://example.org/a.txt"))
	assert.False(t, isURL("C:\\texts\\a.txt"))
}

func TestCollectTextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.txt", "a.txt", "notes.md", "nested/c.TXT"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("text"), 0o644))
	}
	single := filepath.Join(dir, "notes.md")

	remote := "https://example.org/tale.txt"

	files, err := collectTextFiles([]string{dir, single, remote})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "nested", "c.TXT"),
		single,
		remote,
	}, files)

	_, err = collectTextFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
