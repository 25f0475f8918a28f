package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	src := []byte("abcdef")

	t.Run("no edits returns the source", func(t *testing.T) {
		got, err := generate(src, nil)
		require.NoError(t, err)
		require.Equal(t, "abcdef", got)
	})

	t.Run("edits apply in offset order", func(t *testing.T) {
		got, err := generate(src, []edit{
			{Start: 4, End: 6, Text: "XY", seq: 0},
			{Start: 0, End: 1, Text: "A", seq: 1},
		})
		require.NoError(t, err)
		require.Equal(t, "AbcdXY", got)
	})

	t.Run("insertions precede a replacement at the same offset", func(t *testing.T) {
		got, err := generate(src, []edit{
			{Start: 2, End: 4, Text: "_", seq: 0},
			{Start: 2, End: 2, Text: "1", seq: 1},
			{Start: 2, End: 2, Text: "2", seq: 2},
		})
		require.NoError(t, err)
		require.Equal(t, "ab12_ef", got)
	})

	t.Run("insertion at the end", func(t *testing.T) {
		got, err := generate(src, []edit{{Start: 6, End: 6, Text: ";", seq: 0}})
		require.NoError(t, err)
		require.Equal(t, "abcdef;", got)
	})

	t.Run("overlapping edits fail", func(t *testing.T) {
		_, err := generate(src, []edit{
			{Start: 0, End: 3, Text: "x", seq: 0},
			{Start: 2, End: 4, Text: "y", seq: 1},
		})
		require.Error(t, err)
	})

	t.Run("out of range edit fails", func(t *testing.T) {
		_, err := generate(src, []edit{{Start: 5, End: 9, Text: "x", seq: 0}})
		require.Error(t, err)
	})
}

func TestParseModule(t *testing.T) {
	t.Run("typescript needs its own dialect", func(t *testing.T) {
		src := []byte("const n: number = 1;\nexport default n;\n")
		_, err := parseModule(src, DialectJSX)
		require.ErrorIs(t, err, ErrParse)

		tree, err := parseModule(src, DialectTS)
		require.NoError(t, err)
		defer tree.Close()
		require.Equal(t, "program", tree.RootNode().Type())
	})

	t.Run("jsx parses in the default dialect", func(t *testing.T) {
		tree, err := parseModule([]byte("export default () => <div className=\"x\" />;\n"), DialectJSX)
		require.NoError(t, err)
		tree.Close()
	})
}

func TestPrologueEnd(t *testing.T) {
	cases := []struct{ src, want string }{
		{"", ""},
		{"export default A;", ""},
		{"\"use client\";\nexport default A;", "\"use client\";"},
		{"#!/usr/bin/env node\nexport default A;", "#!/usr/bin/env node"},
		{"// c\n'use strict';\n\"use client\";\nA;", "// c\n'use strict';\n\"use client\";"},
	}
	for _, tc := range cases {
		root, b := parseForTest(t, tc.src)
		require.Equal(t, tc.want, string(b[:prologueEnd(root)]), tc.src)
	}
}
