package syntax

import (
	"fmt"
	"strings"
)

// Location is a 1-indexed position in a source file
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Resolve converts a byte offset into text to a 1-indexed line and column.
// The column counts bytes from the last line break before offset.
func Resolve(text string, offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line = strings.Count(prefix, "\n") + 1
	column = offset - strings.LastIndex(prefix, "\n")
	return line, column
}

// Locate resolves the position of n within text, the full source of file.
// Since Pos includes leading trivia, the result may point at the end of the
// previous token rather than at the node's first visible character.
func Locate(file, text string, n Node) Location {
	line, column := Resolve(text, n.Pos())
	return Location{File: file, Line: line, Column: column}
}
