package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/thu-info-community/thu-info-code-scan/internal/syntax"
)

// node is an owned copy of a tree-sitter node. Copying the tree lets the
// tree-sitter tree be closed right after parsing and gives every node its
// trivia-inclusive start offset, which tree-sitter does not track.
type node struct {
	kind     string
	pos      int
	start    int
	end      int
	named    bool
	children []syntax.Node
	source   []byte
}

func (n *node) Kind() string            { return n.kind }
func (n *node) Pos() int                { return n.pos }
func (n *node) Text() string            { return string(n.source[n.start:n.end]) }
func (n *node) Children() []syntax.Node { return n.children }
func (n *node) IsNamed() bool           { return n.named }

// convert copies the tree rooted at root. Nodes are visited in document
// order; the start offset of each node including trivia is the end of the
// last non-comment token seen before it.
func convert(root *sitter.Node, source []byte) syntax.Node {
	type frame struct {
		ts  *sitter.Node
		out *node
	}

	top := newNode(root, source)
	stack := []frame{{ts: root, out: top}}
	lastTokenEnd := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f.out.pos = lastTokenEnd
		count := f.ts.ChildCount()
		if count == 0 {
			if f.out.kind != syntax.KindComment {
				lastTokenEnd = f.out.end
			}
			continue
		}

		f.out.children = make([]syntax.Node, 0, count)
		frames := make([]frame, 0, count)
		for i := uint(0); i < count; i++ {
			child := f.ts.Child(i)
			if child == nil {
				continue
			}
			c := newNode(child, source)
			f.out.children = append(f.out.children, c)
			frames = append(frames, frame{ts: child, out: c})
		}
		for i := len(frames) - 1; i >= 0; i-- {
			stack = append(stack, frames[i])
		}
	}
	top.pos = 0
	return top
}

func newNode(n *sitter.Node, source []byte) *node {
	start, end := int(n.StartByte()), int(n.EndByte())
	if end > len(source) {
		end = len(source)
	}
	if start > end {
		start = end
	}
	return &node{
		kind:   n.Kind(),
		start:  start,
		end:    end,
		named:  n.IsNamed(),
		source: source,
	}
}
