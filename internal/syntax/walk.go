package syntax

// Walk visits every node of the given kind under root (root included) in
// depth-first, document order and calls visit for each. The traversal uses an
// explicit stack, so deeply nested input cannot exhaust the goroutine stack.
// The first error returned by visit stops the walk and is returned.
func Walk(root Node, kind string, visit func(Node) error) error {
	if root == nil {
		return nil
	}
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Kind() == kind {
			if err := visit(n); err != nil {
				return err
			}
		}

		// Push in reverse so the leftmost child is popped first
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}
