package syntax

// Node is a read-only view of one node of a parsed source file
type Node interface {
	// Kind is the grammar's node type, e.g. "call_expression"
	Kind() string
	// Pos is the byte offset where the node starts, including any leading
	// trivia (whitespace and comments) between it and the previous token
	Pos() int
	// Text is the node's own source text, without leading trivia
	Text() string
	// Children returns all child nodes in source order, anonymous tokens included
	Children() []Node
	// IsNamed reports whether the node is a named grammar rule rather than
	// an anonymous token such as "(" or ","
	IsNamed() bool
}

// KindComment is the node type of comments, which are trivia for every matcher
const KindComment = "comment"

// NamedChildren returns the named, non-comment children of n
func NamedChildren(n Node) []Node {
	if n == nil {
		return nil
	}
	var named []Node
	for _, c := range n.Children() {
		if c.IsNamed() && c.Kind() != KindComment {
			named = append(named, c)
		}
	}
	return named
}

// ChildOfKind returns the first direct child of n with the given kind, or nil
func ChildOfKind(n Node, kind string) Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}
