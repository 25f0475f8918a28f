// Package rewrite instruments route modules for the inspection overlay: it
// wraps the default export and allow-listed named exports in calls to the
// overlay's runtime wrappers and injects the imports they need.
package rewrite

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
)

// Transformer rewrites modules. It holds no per-module state and is safe for
// concurrent use.
type Transformer struct {
	opts Options
}

// New creates a Transformer with the given options.
func New(opts ...Option) *Transformer {
	o := Options{Dialect: DialectJSX, Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Transformer{opts: o}
}

// Transform rewrites a JavaScript/JSX module with default options.
func Transform(source, configJSON, pluginImports string) (string, error) {
	return New().Transform(source, configJSON, pluginImports)
}

// generator holds transient state while rewriting a single module.
type generator struct {
	src      []byte
	names    *nameResolver
	wrappers []wrapperRef
	edits    []edit
	tail     []string // statements appended after the module body
}

func newGenerator(src []byte, root *sitter.Node) *generator {
	g := &generator{src: src, names: newNameResolver(root, src)}
	g.names.reserve(stylesheetIdent)
	return g
}

// Transform instruments source. When the default export is missing or has
// an unrecognized shape the source is returned unchanged and pluginImports is
// ignored. Otherwise pluginImports is placed verbatim at the top of the
// output, followed by the injected imports and the rewritten module; a links
// export is appended when the module has none.
func (t *Transformer) Transform(source, configJSON, pluginImports string) (string, error) {
	log := t.opts.Logger
	src := []byte(source)
	tree, err := parseModule(src, t.opts.Dialect)
	if err != nil {
		return "", err
	}
	defer tree.Close()
	root := tree.RootNode()
	g := newGenerator(src, root)

	site := locateExport(root, src, exportTarget{})
	shape := classify(site)
	log.Debug("classified export", zap.String("export", "default"), zap.Bool("found", site != nil), zap.Stringer("shape", shape))
	if shape == ShapeUnsupported {
		return source, nil
	}
	desc, err := decodeDescriptor(configJSON)
	if err != nil {
		return "", err
	}
	cfg, err := materializeConfig(desc)
	if err != nil {
		return "", err
	}
	if err := g.rewriteExport(site, shape, defaultWrapper, cfg); err != nil {
		return "", err
	}

	linksFound := false
	for _, ne := range namedExportAllowlist {
		site := locateExport(root, src, exportTarget{Name: ne.Name})
		shape := classify(site)
		log.Debug("classified export", zap.String("export", ne.Name), zap.Bool("found", site != nil), zap.Stringer("shape", shape))
		if site == nil {
			if ne.Name == linksExportName && reexports(root, src, exportTarget{Name: ne.Name}) {
				log.Debug("export provided by re-export", zap.String("export", ne.Name))
				linksFound = true
			}
			continue
		}
		if ne.Name == linksExportName {
			linksFound = true
		}
		if shape == ShapeUnsupported {
			continue
		}
		if err := g.rewriteExport(site, shape, ne.Wrapper, identExpr(ne.Extra)); err != nil {
			return "", err
		}
	}

	if err := g.checkFixedNames(!linksFound); err != nil {
		return "", err
	}
	if err := g.injectImports(root); err != nil {
		return "", err
	}
	if len(g.tail) > 0 {
		g.insert(uint32(len(src)), lineBreakBefore(source)+strings.Join(g.tail, ""))
	}
	code, err := generate(src, g.edits)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if pluginImports != "" {
		out.WriteString(pluginImports)
		out.WriteString(lineBreakBefore(pluginImports))
	}
	out.WriteString(code)
	if !linksFound {
		links, err := renderStatement(tmplLinks, linksModel{Name: linksExportName, StylesheetIdent: stylesheetIdent})
		if err != nil {
			return "", err
		}
		out.WriteString(lineBreakBefore(code))
		out.WriteString(links)
	}
	result := out.String()
	if t.opts.Verify {
		if err := verifyOutput(result, t.opts.Dialect); err != nil {
			return "", err
		}
	}
	log.Debug("instrumented module", zap.Int("wrappers", len(g.wrappers)), zap.Bool("synthesizedLinks", !linksFound))
	return result, nil
}

// checkFixedNames fails when the module already binds a name that is
// introduced verbatim: the stylesheet import, and the links export when one
// is synthesized.
func (g *generator) checkFixedNames(synthesizeLinks bool) error {
	names := []string{stylesheetIdent}
	if synthesizeLinks {
		names = append(names, linksExportName)
	}
	for _, name := range names {
		if g.names.bound(name) {
			return fmt.Errorf("%w: %q is declared by the module", ErrNameConflict, name)
		}
	}
	return nil
}

// lineBreakBefore returns the newline needed so text appended after s starts
// on a fresh line.
func lineBreakBefore(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return ""
	}
	return "\n"
}
