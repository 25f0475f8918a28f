package rewrite

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reservedWords cannot be used as identifier references.
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

func isIDStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIDPart(r rune) bool {
	return isIDStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r) || r == '\u200c' || r == '\u200d'
}

// isIdentifierName reports whether s may appear as a bare property key.
func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	first, size := utf8.DecodeRuneInString(s)
	if !isIDStart(first) {
		return false
	}
	for _, r := range s[size:] {
		if !isIDPart(r) {
			return false
		}
	}
	return true
}

// isIdentifierReference reports whether s may refer to a binding.
func isIdentifierReference(s string) bool {
	return isIdentifierName(s) && !reservedWords[s]
}

// propertyKey renders an object key, quoting it only when required.
func propertyKey(key string) string {
	if isIdentifierName(key) {
		return key
	}
	lit, err := stringLiteral(key)
	if err != nil {
		return `""`
	}
	return lit
}

// uidBase derives the base of a synthesized local name, "_" + name with any
// character that cannot appear in an identifier dropped.
func uidBase(name string) string {
	var b strings.Builder
	b.WriteByte('_')
	for _, r := range name {
		if isIDPart(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
