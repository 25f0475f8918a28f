package rewrite

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"
)

const (
	tmplImports   = "imports"
	tmplLinks     = "links"
	tmplSpecifier = "specifier"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	stmtTmpl     *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// validateTemplates ensures all required templates are defined
func validateTemplates() error {
	for _, name := range []string{tmplImports, tmplLinks, tmplSpecifier} {
		if stmtTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplImports).
			Funcs(template.FuncMap{"quote": stringLiteral}).
			ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		stmtTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}

// renderStatement executes the named statement template.
func renderStatement(name string, data any) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := stmtTmpl.ExecuteTemplate(&out, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return out.String(), nil
}
