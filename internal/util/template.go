package util

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// CompileTemplate parses text into a template carrying the sprig function
// map. This lives in internal to avoid committing to public API stability prematurely.
func CompileTemplate(name, text string) (*template.Template, error) {
	return template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(text)
}

// MustCompileTemplate is CompileTemplate for package-level constant templates.
func MustCompileTemplate(name, text string) *template.Template {
	return template.Must(CompileTemplate(name, text))
}

// RenderTemplate replaces template variables in text using data.
func RenderTemplate(text string, data any) (string, error) {
	if !strings.Contains(text, "{{") { // fast path: no template markers
		return text, nil
	}
	tmpl, err := CompileTemplate("prompt", text)
	if err != nil {
		return "", err
	}
	return Execute(tmpl, data)
}

// Execute runs a compiled template into a string.
func Execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
