package ast

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Comment represents a single documentation comment (///).
type Comment struct {
	Pos  lexer.Position
	Text string `@DocComment`
}

// CommentBlock represents consecutive doc comments attached to a declaration.
type CommentBlock struct {
	Comments []*Comment `@@*`
}

// GetText returns the combined comment text with the /// markers stripped.
func (c *CommentBlock) GetText() string {
	if c == nil || len(c.Comments) == 0 {
		return ""
	}
	lines := make([]string, len(c.Comments))
	for i, comment := range c.Comments {
		text := strings.TrimPrefix(comment.Text, "///")
		lines[i] = strings.TrimPrefix(text, " ")
	}
	return strings.Join(lines, "\n")
}
