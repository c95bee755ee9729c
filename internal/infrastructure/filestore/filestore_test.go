package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_Save(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir, "http://localhost:5000/uploads/")
	require.NoError(t, err)

	url, err := d.Save(context.Background(), "avatars/u1.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/uploads/avatars/u1.png", url)

	b, err := os.ReadFile(filepath.Join(dir, "avatars", "u1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
}

func TestDisk_SaveStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir, "/uploads")
	require.NoError(t, err)

	url, err := d.Save(context.Background(), "../../escape.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)
	assert.FileExists(t, filepath.Join(dir, "escape.png"))
}
