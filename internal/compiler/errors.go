package compiler

import "fmt"

// CompileError is a single syntax or semantic error discovered while
// compiling. A compile can surface more than one — see panic-mode recovery
// in compiler.go — so Compile returns a slice of these rather than
// stopping at the first.
type CompileError struct {
	Line    int
	Lexeme  string
	AtEnd   bool
	Message string
}

func (e *CompileError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}
