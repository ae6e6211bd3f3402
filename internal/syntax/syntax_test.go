package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	kind     string
	pos      int
	text     string
	named    bool
	children []Node
}

func (n *fakeNode) Kind() string     { return n.kind }
func (n *fakeNode) Pos() int         { return n.pos }
func (n *fakeNode) Text() string     { return n.text }
func (n *fakeNode) Children() []Node { return n.children }
func (n *fakeNode) IsNamed() bool    { return n.named }

func leaf(kind, text string) *fakeNode {
	return &fakeNode{kind: kind, text: text, named: true}
}

func branch(kind string, children ...Node) *fakeNode {
	return &fakeNode{kind: kind, named: true, children: children}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		offset     int
		wantLine   int
		wantColumn int
	}{
		{"start of file", "roam()", 0, 1, 1},
		{"first line", "const x = roam()", 10, 1, 11},
		{"after one line break", "a\nroam()", 2, 2, 1},
		{"middle of third line", "a\nbb\n   roam()", 8, 3, 4},
		{"offset on a line break", "ab\ncd", 2, 1, 3},
		{"crlf counts the line feed only", "a\r\nb", 3, 2, 1},
		{"past the end is clamped", "ab", 10, 1, 3},
		{"negative is clamped", "ab", -4, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, column := Resolve(tt.text, tt.offset)
			assert.Equal(t, tt.wantLine, line, "line")
			assert.Equal(t, tt.wantColumn, column, "column")
		})
	}
}

func TestResolve_LineIsBreaksPlusOne(t *testing.T) {
	text := "x\n\n\ny\n\nz"
	for offset := 0; offset <= len(text); offset++ {
		breaks := 0
		for _, c := range text[:offset] {
			if c == '\n' {
				breaks++
			}
		}
		line, _ := Resolve(text, offset)
		assert.Equal(t, breaks+1, line, "offset %d", offset)
	}
}

func TestLocate(t *testing.T) {
	n := &fakeNode{kind: "call_expression", pos: 5}
	loc := Locate("/lib/basics.ts", "a;\nb; c()", n)
	assert.Equal(t, Location{File: "/lib/basics.ts", Line: 2, Column: 3}, loc)
	assert.Equal(t, "/lib/basics.ts:2:3", loc.String())
}

func TestWalk_DocumentOrder(t *testing.T) {
	// call(a, call(b), c) with a call nested in the second argument
	inner := branch("call", leaf("identifier", "b"))
	root := branch("program",
		branch("call", leaf("identifier", "a"), inner, leaf("identifier", "c")),
		leaf("identifier", "d"),
	)

	var seen []string
	err := Walk(root, "identifier", func(n Node) error {
		seen = append(seen, n.Text())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, seen)

	calls := 0
	require.NoError(t, Walk(root, "call", func(Node) error {
		calls++
		return nil
	}))
	assert.Equal(t, 2, calls)
}

func TestWalk_IncludesRoot(t *testing.T) {
	root := leaf("call", "f()")
	count := 0
	require.NoError(t, Walk(root, "call", func(Node) error {
		count++
		return nil
	}))
	assert.Equal(t, 1, count)
}

func TestWalk_StopsAtFirstError(t *testing.T) {
	root := branch("program", leaf("x", "1"), leaf("x", "2"), leaf("x", "3"))
	stop := errors.New("stop")

	var seen []string
	err := Walk(root, "x", func(n Node) error {
		seen = append(seen, n.Text())
		if n.Text() == "2" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"1", "2"}, seen)
}

func TestWalk_DeepTree(t *testing.T) {
	const depth = 200000
	var n Node = leaf("x", "bottom")
	for i := 0; i < depth; i++ {
		n = branch("x", n)
	}

	count := 0
	require.NoError(t, Walk(n, "x", func(Node) error {
		count++
		return nil
	}))
	assert.Equal(t, depth+1, count)
}

func TestWalk_NilRoot(t *testing.T) {
	assert.NoError(t, Walk(nil, "x", func(Node) error { return errors.New("unreachable") }))
}

func TestNamedChildren(t *testing.T) {
	args := branch("arguments",
		&fakeNode{kind: "(", text: "("},
		leaf("identifier", "a"),
		&fakeNode{kind: ",", text: ","},
		leaf(KindComment, "/* b */"),
		leaf("string", `"c"`),
		&fakeNode{kind: ")", text: ")"},
	)

	named := NamedChildren(args)
	require.Len(t, named, 2)
	assert.Equal(t, "a", named[0].Text())
	assert.Equal(t, `"c"`, named[1].Text())

	assert.Equal(t, "a", ChildOfKind(args, "identifier").Text())
	assert.Nil(t, ChildOfKind(args, "number"))
	assert.Nil(t, NamedChildren(nil))
}
