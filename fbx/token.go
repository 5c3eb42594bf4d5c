package fbx

import (
	"fmt"
)

// TokenKind classifies a lexed unit of an FBX document.
type TokenKind uint8

const (
	TokenOpenBracket TokenKind = iota
	TokenCloseBracket
	TokenData
	TokenBinaryData
	TokenComma
	TokenKey
)

func (k TokenKind) String() string {
	switch k {
	case TokenOpenBracket:
		return "OPEN_BRACKET"
	case TokenCloseBracket:
		return "CLOSE_BRACKET"
	case TokenData:
		return "DATA"
	case TokenBinaryData:
		return "BINARY_DATA"
	case TokenComma:
		return "COMMA"
	case TokenKey:
		return "KEY"
	}
	return "UNKNOWN"
}

// Position locates a token in its source. Text tokens carry a line and
// column, binary tokens carry a byte offset; the two are mutually exclusive.
type Position struct {
	line   uint32
	column uint32
	offset uint64
	binary bool
}

func TextPosition(line, column uint32) Position {
	return Position{
		line:   line,
		column: column,
	}
}

func BinaryPosition(offset uint64) Position {
	return Position{
		offset: offset,
		binary: true,
	}
}

func (p Position) IsBinary() bool {
	return p.binary
}

// Line panics on binary positions; that is a caller bug, not bad input.
func (p Position) Line() uint32 {
	if p.binary {
		panic(fmt.Errorf("Line called on binary position"))
	}
	return p.line
}

func (p Position) Column() uint32 {
	if p.binary {
		panic(fmt.Errorf("Column called on binary position"))
	}
	return p.column
}

func (p Position) Offset() uint64 {
	if !p.binary {
		panic(fmt.Errorf("Offset called on text position"))
	}
	return p.offset
}

func (p Position) String() string {
	if p.binary {
		return fmt.Sprintf("offset 0x%X", p.offset)
	}
	return fmt.Sprintf("line %d, col %d", p.line, p.column)
}

// Token is an immutable view into the source buffer, spanning the half-open
// byte range [begin, end). It never copies buffer bytes; the buffer must
// outlive every token derived from it.
type Token struct {
	buf   []byte
	begin int
	end   int
	kind  TokenKind
	pos   Position
}

func newTextToken(buf []byte, begin, end int, kind TokenKind, line, column uint32) *Token {
	if end <= begin {
		panic(fmt.Errorf("text token must not be empty: begin %d, end %d", begin, end))
	}
	return &Token{
		buf:   buf,
		begin: begin,
		end:   end,
		kind:  kind,
		pos:   TextPosition(line, column),
	}
}

// newBinaryToken permits end == begin; zero-length binary tokens mark scope
// boundaries that own no bytes of their own.
func newBinaryToken(buf []byte, begin, end int, kind TokenKind, offset uint64) *Token {
	if end < begin {
		panic(fmt.Errorf("invalid binary token range: begin %d, end %d", begin, end))
	}
	return &Token{
		buf:   buf,
		begin: begin,
		end:   end,
		kind:  kind,
		pos:   BinaryPosition(offset),
	}
}

func (t *Token) Kind() TokenKind {
	return t.kind
}

func (t *Token) Begin() int {
	return t.begin
}

func (t *Token) End() int {
	return t.end
}

func (t *Token) IsBinary() bool {
	return t.pos.binary
}

func (t *Token) Position() Position {
	return t.pos
}

func (t *Token) Line() uint32 {
	return t.pos.Line()
}

func (t *Token) Column() uint32 {
	return t.pos.Column()
}

func (t *Token) Offset() uint64 {
	return t.pos.Offset()
}

// Contents returns the raw source slice as a string, quotes and type tags
// included. Use the ParseAs functions for decoded values.
func (t *Token) Contents() string {
	return string(t.buf[t.begin:t.end])
}

func (t *Token) String() string {
	if t.kind == TokenData || t.kind == TokenKey {
		return fmt.Sprintf("%s(%q)", t.kind, t.Contents())
	}
	if t.kind == TokenBinaryData {
		return fmt.Sprintf("%s(%d bytes)", t.kind, t.end-t.begin)
	}
	return t.kind.String()
}
