package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_FastPath(t *testing.T) {
	out, err := RenderTemplate("no markers", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers", out)
}

func TestRenderTemplate_NamedFieldsAndSprig(t *testing.T) {
	out, err := RenderTemplate("Hi {{ .Name | upper }} {{ default \"x\" .Missing }}", map[string]any{"Name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hi ADA x", out)
}

func TestRenderTemplate_NoHTMLEscaping(t *testing.T) {
	out, err := RenderTemplate("{{ .Code }}", map[string]string{"Code": "if (n <= 1) return n;"})
	require.NoError(t, err)
	assert.Equal(t, "if (n <= 1) return n;", out)
}

func TestRenderTemplate_ParseError(t *testing.T) {
	_, err := RenderTemplate("{{ .Broken ", nil)
	assert.Error(t, err)
}
