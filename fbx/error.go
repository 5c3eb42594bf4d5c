package fbx

import "fmt"

// Error is a fatal tokenization or value-decode failure. It carries the
// position the scan had reached; text positions render as line and column,
// binary positions as a byte offset.
type Error struct {
	Msg string
	Pos Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("FBX-Tokenize (%s): %s", e.Pos, e.Msg)
}

func errorAt(pos Position, format string, args ...any) *Error {
	return &Error{
		Msg: fmt.Sprintf(format, args...),
		Pos: pos,
	}
}

func textError(line, column uint32, format string, args ...any) *Error {
	return errorAt(TextPosition(line, column), format, args...)
}

func binaryError(offset uint64, format string, args ...any) *Error {
	return errorAt(BinaryPosition(offset), format, args...)
}
