package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ContactMessage(t *testing.T) {
	data := map[string]any{
		"Name":    "Ana",
		"Email":   "ana@example.com",
		"Message": "Hola\n<script>alert(1)</script>",
	}
	subject, text, html, err := Render(ContactMessage, data)
	require.NoError(t, err)

	assert.Contains(t, subject, "Thinkel")
	assert.Contains(t, subject, "Ana")
	assert.Contains(t, text, "ana@example.com")
	assert.Contains(t, text, "<script>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", ""))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, 3, defaultFn("x", 3))
	assert.Equal(t, "v", defaultFn("x", "v"))
}
