package rewrite

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// injectImports inserts one import of every requested wrapper plus the
// stylesheet import. Nothing is inserted when no wrapper was requested.
func (g *generator) injectImports(root *sitter.Node) error {
	if len(g.wrappers) == 0 {
		return nil
	}
	text, err := renderStatement(tmplImports, importsModel{
		Wrappers:         g.wrappers,
		WrapperModule:    wrapperModule,
		StylesheetIdent:  stylesheetIdent,
		StylesheetModule: stylesheetModule,
	})
	if err != nil {
		return err
	}
	at := prologueEnd(root)
	if at > 0 {
		text = "\n" + strings.TrimSuffix(text, "\n")
	}
	g.insert(at, text)
	return nil
}

// prologueEnd returns the offset just past a leading hashbang line and
// directive prologue ("use client"; and the like), or 0 when there is none.
// Imports inserted there keep the directives in effect.
func prologueEnd(root *sitter.Node) uint32 {
	var end uint32
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch {
		case n.Type() == "hashbang_line":
			end = n.EndByte()
		case n.Type() == "comment":
		case isDirective(n):
			end = n.EndByte()
		default:
			return end
		}
	}
	return end
}

func isDirective(n *sitter.Node) bool {
	return n.Type() == "expression_statement" && n.NamedChildCount() == 1 && n.NamedChild(0).Type() == "string"
}
