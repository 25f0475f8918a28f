package rewrite

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// rewriteExport replaces the value of a classified export with a call to the
// wrapper, leaving the rest of the statement and every declaration the value
// refers to untouched.
func (g *generator) rewriteExport(site *exportSite, shape Shape, wrapperName string, extra exprNode) error {
	switch shape {
	case ShapeExpression, ShapeIdentifier:
		if site.Kind == siteKindSpecifier {
			return g.rewriteSpecifier(site, wrapperName, extra)
		}
		v := unwrapParens(site.Value)
		g.replace(v, renderExpr(wrapCall(g.wrapper(wrapperName), g.raw(v), extra)))
		if site.Kind == siteKindValue && !endsWithSemicolon(site.Statement) {
			g.insert(site.Value.EndByte(), ";")
		}
	case ShapeFunctionDeclaration:
		return g.rewriteDeclaration(site, wrapperName, extra)
	default:
		return fmt.Errorf("export %s: cannot rewrite %s shape", site.Target, shape)
	}
	return nil
}

func endsWithSemicolon(stmt *sitter.Node) bool {
	n := int(stmt.ChildCount())
	return n > 0 && stmt.Child(n-1).Type() == ";"
}

// rewriteDeclaration turns `export [default] function f() {}` into a wrapped
// function expression. The declaration text is reused verbatim, so name,
// parameters, body and async/generator markers carry over unchanged.
func (g *generator) rewriteDeclaration(site *exportSite, wrapperName string, extra exprNode) error {
	decl := site.Value
	call := renderExpr(wrapCall(g.wrapper(wrapperName), g.raw(decl), extra))
	if site.Target.isDefault() {
		g.replace(decl, call+";")
		return nil
	}
	g.edits = append(g.edits, edit{
		Start: site.Statement.StartByte(),
		End:   decl.EndByte(),
		Text:  "export const " + site.Target.Name + " = " + call + ";",
		seq:   len(g.edits),
	})
	return nil
}

// rewriteSpecifier handles `export { local as name }`. A specifier cannot hold
// an expression, so the wrapped value is bound to a fresh const appended to
// the module and the specifier is pointed at it.
func (g *generator) rewriteSpecifier(site *exportSite, wrapperName string, extra exprNode) error {
	callee := g.wrapper(wrapperName)
	local := g.names.unique(site.Target.String())
	stmt, err := renderStatement(tmplSpecifier, specifierModel{
		Local: local,
		Value: renderExpr(wrapCall(callee, g.raw(site.Value), extra)),
	})
	if err != nil {
		return err
	}
	g.tail = append(g.tail, stmt)
	_, exported := specifierNames(site.Specifier)
	g.replace(site.Specifier, local+" as "+exported.Content(g.src))
	return nil
}

// wrapper returns the local name for a logical wrapper, synthesizing it on
// first use.
func (g *generator) wrapper(name string) string {
	for _, w := range g.wrappers {
		if w.Name == name {
			return w.Local
		}
	}
	local := g.names.unique(name)
	g.wrappers = append(g.wrappers, wrapperRef{Name: name, Local: local})
	return local
}

func (g *generator) raw(n *sitter.Node) exprNode { return rawExpr(n.Content(g.src)) }

func (g *generator) replace(n *sitter.Node, text string) {
	g.edits = append(g.edits, edit{Start: n.StartByte(), End: n.EndByte(), Text: text, seq: len(g.edits)})
}

func (g *generator) insert(at uint32, text string) {
	g.edits = append(g.edits, edit{Start: at, End: at, Text: text, seq: len(g.edits)})
}
