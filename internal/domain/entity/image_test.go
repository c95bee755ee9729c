package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageExt(t *testing.T) {
	ext, ok := ImageExt("image/JPEG; charset=binary")
	assert.True(t, ok)
	assert.Equal(t, ".jpg", ext)

	_, ok = ImageExt("application/pdf")
	assert.False(t, ok)
}
