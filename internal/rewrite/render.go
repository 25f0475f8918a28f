package rewrite

import "strings"

// renderExpr prints a synthesized expression on a single line.
func renderExpr(n exprNode) string {
	var b strings.Builder
	writeExpr(&b, n)
	return b.String()
}

func writeExpr(b *strings.Builder, n exprNode) {
	switch n.Kind {
	case exprKindIdent, exprKindLiteral, exprKindRaw:
		b.WriteString(n.Text)
	case exprKindArray:
		b.WriteByte('[')
		writeList(b, n.Elems)
		b.WriteByte(']')
	case exprKindObject:
		if len(n.Props) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, p := range n.Props {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(propertyKey(p.Key))
			b.WriteString(": ")
			writeExpr(b, p.Value)
		}
		b.WriteString(" }")
	case exprKindCall:
		b.WriteString(n.Text)
		b.WriteByte('(')
		writeList(b, n.Elems)
		b.WriteByte(')')
	}
}

func writeList(b *strings.Builder, elems []exprNode) {
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e)
	}
}

// wrapCall builds `callee(arg, extra)`.
func wrapCall(callee string, arg, extra exprNode) exprNode {
	return exprNode{Kind: exprKindCall, Text: callee, Elems: []exprNode{arg, extra}}
}

func rawExpr(text string) exprNode { return exprNode{Kind: exprKindRaw, Text: text} }

func identExpr(name string) exprNode { return exprNode{Kind: exprKindIdent, Text: name} }
