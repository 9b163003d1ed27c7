package decode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello.mp3", "hello.mp3"},
		{"single encoding", "h%C3%A9llo.mp3", "héllo.mp3"},
		{"double encoding", "h%25C3%25A9llo.mp3", "héllo.mp3"},
		{"encoded space", "two%20words.mp3", "two words.mp3"},
		{"invalid escape left alone", "50%off.mp3", "50%off.mp3"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeName(tt.in))
		})
	}
}

func TestPlan_FindsEncodedNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.mp3"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "h%C3%A9llo.mp3"), []byte("b"), 0o644))

	plan, err := Plan(dir)

	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, filepath.Join(dir, "h%C3%A9llo.mp3"), plan[0].From)
	assert.Equal(t, filepath.Join(dir, "héllo.mp3"), plan[0].To)
}

func TestPlan_SkipsWhenDecodedExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "héllo.mp3"), []byte("keep"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "h%C3%A9llo.mp3"), []byte("dup"), 0o644))

	plan, err := Plan(dir)

	require.NoError(t, err)
	assert.Empty(t, plan, "must not overwrite an existing decoded file")
}

func TestPlan_MissingDir(t *testing.T) {
	_, err := Plan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestApply_RenamesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "h%C3%A9llo.mp3"), []byte("b"), 0o644))

	plan, err := Plan(dir)
	require.NoError(t, err)

	n, err := Apply(plan)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.FileExists(t, filepath.Join(dir, "héllo.mp3"))
	assert.NoFileExists(t, filepath.Join(dir, "h%C3%A9llo.mp3"))
}

func TestApply_EmptyPlan(t *testing.T) {
	n, err := Apply(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
