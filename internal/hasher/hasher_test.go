package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashLengths(t *testing.T) {
	data := []byte("sharpgrade")
	full := ContentHash(data, 0)
	assert.Len(t, full, 16)
	assert.Equal(t, full[:8], ContentHash(data, 8))
	assert.Equal(t, full, ContentHash(data, 64))
	assert.NotEqual(t, full, ContentHash([]byte("sharpgradE"), 0))
}

func TestEmptyInputMatchesKnownDigest(t *testing.T) {
	// xxHash64 of the empty string with seed 0.
	assert.Equal(t, "ef46db3751d8e999", ContentHash(nil, 0))
}

func TestReaderAndFileAgree(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4, 5}, 10_000)
	want := ContentHash(data, DefaultLen)

	got, err := ContentHashReader(bytes.NewReader(data), DefaultLen)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	got, err = FileHash(path, DefaultLen)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileHashMissing(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "nope"), DefaultLen)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
