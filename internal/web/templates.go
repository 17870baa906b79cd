package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// DefaultTemplates returns the templates compiled into the binary.
func DefaultTemplates() (*template.Template, error) {
	return LoadTemplates(embeddedTemplates)
}

// LoadTemplates loads all templates from the filesystem.
func LoadTemplates(templatesFS fs.FS) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())

	matches, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, match := range matches {
		content, err := fs.ReadFile(templatesFS, match)
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.Parse(string(content)); err != nil {
			return nil, err
		}
	}

	return tmpl, nil
}

// templateFuncs returns the common template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
	}
}
