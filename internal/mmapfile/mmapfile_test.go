package mmapfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustshield/voluta/internal/mmapfile"
)

func TestOpen_MapsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("the quick brown fox\x00\xff")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	m, err := mmapfile.Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, content, m.Bytes())
	assert.Equal(t, len(content), m.Len())
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := mmapfile.Open(path)
	require.NoError(t, err)

	assert.Zero(t, m.Len())
	assert.NoError(t, m.Close())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := mmapfile.Open(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClose_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	m, err := mmapfile.Open(path)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
}
