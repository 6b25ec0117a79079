package expr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptyExpression     = errors.New("empty expression")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrUnboundVariable     = errors.New("unbound variable")
)

// SyntaxError reports where parsing stopped. It matches
// ErrMalformedExpression under errors.Is.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedExpression, e.Pos, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedExpression
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
