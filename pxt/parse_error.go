package pxt

import (
	"fmt"
)

type ParseError struct {
	Message string

	// Line is a 1-based line number; 0 means the end of input.
	Line int
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s (at EOF)", e.Message)
	}
	return fmt.Sprintf("%s (line=%d)", e.Message, e.Line)
}
