package fbx

// textScanner is the per-call state of a text tokenization. tokenBegin and
// tokenEnd are -1 while no token is open; both point into buf otherwise.
type textScanner struct {
	buf    []byte
	cursor int
	line   uint32
	column uint32

	tokenBegin int
	tokenEnd   int

	comment     bool
	inQuotes    bool
	pendingData bool

	tokens []*Token
}

// Tokenize scans a text-encoded FBX buffer into its flat token sequence.
// Scanning stops at the end of the buffer or at a NUL byte, whichever comes
// first; a NUL must never occur inside valid content. Tokens are emitted at
// their terminating character, so content must end in whitespace, a newline,
// or a structural character: a token or quoted string still open when the
// buffer ends is dropped, not flushed. Well-formed exports always close with
// a newline. The first lexical error aborts the whole scan, there is no
// partial result.
func Tokenize(input []byte) ([]*Token, error) {
	s := &textScanner{
		buf:        input,
		line:       1,
		column:     1,
		tokenBegin: -1,
		tokenEnd:   -1,
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

func (s *textScanner) run() error {
	for ; s.cursor < len(s.buf) && s.buf[s.cursor] != 0; s.advance() {
		c := s.buf[s.cursor]

		if isLineEnd(c) {
			// comments are line-scoped
			s.comment = false
			s.column = 0
			s.line++
		}

		if s.comment {
			continue
		}

		if s.inQuotes {
			// the only recognized character is the closing quote; the
			// pending range already spans everything since the opening one
			if c == '"' {
				s.inQuotes = false
				s.tokenEnd = s.cursor
				if err := s.flush(TokenData, false); err != nil {
					return err
				}
				s.pendingData = false
			}
			continue
		}

		switch c {
		case '"':
			if s.tokenBegin >= 0 {
				return textError(s.line, s.column, "unexpected double-quote")
			}
			s.tokenBegin = s.cursor
			s.inQuotes = true
			continue

		case ';':
			if err := s.flush(TokenData, false); err != nil {
				return err
			}
			s.comment = true
			continue

		case '{':
			if err := s.flush(TokenData, false); err != nil {
				return err
			}
			s.emitSingle(TokenOpenBracket)
			continue

		case '}':
			if err := s.flush(TokenData, false); err != nil {
				return err
			}
			s.emitSingle(TokenCloseBracket)
			continue

		case ',':
			if s.pendingData {
				if err := s.flush(TokenData, true); err != nil {
					return err
				}
			}
			s.emitSingle(TokenComma)
			continue

		case ':':
			if !s.pendingData {
				return textError(s.line, s.column, "unexpected colon")
			}
			// the just-scanned identifier was a key, not a value
			if err := s.flush(TokenKey, true); err != nil {
				return err
			}
			continue
		}

		if isSpaceOrNewLine(c) {
			if s.tokenBegin >= 0 {
				kind := TokenData
				if s.lookaheadKey() {
					kind = TokenKey
				}
				if err := s.flush(kind, false); err != nil {
					return err
				}
			}
			s.pendingData = false
			continue
		}

		// ordinary content character
		s.tokenEnd = s.cursor
		if s.tokenBegin < 0 {
			s.tokenBegin = s.cursor
		}
		s.pendingData = true
	}
	return nil
}

func (s *textScanner) advance() {
	s.column = advanceColumn(s.column, s.buf[s.cursor])
	s.cursor++
}

// lookaheadKey peeks past the whitespace run at the cursor. When the first
// non-whitespace character is a colon it advances the cursor onto the colon,
// which the loop increment then steps over, and reports that the pending
// token is a key.
func (s *textScanner) lookaheadKey() bool {
	peek := s.cursor
	for peek < len(s.buf) && s.buf[peek] != 0 && isSpaceOrNewLine(s.buf[peek]) {
		peek++
	}
	if peek < len(s.buf) && s.buf[peek] == ':' {
		s.cursor = peek
		return true
	}
	return false
}

// flush closes the pending token range, if any. The range is re-scanned for
// unquoted whitespace before the token is emitted; the pending range is
// reset no matter what.
func (s *textScanner) flush(kind TokenKind, mustHaveToken bool) error {
	begin, end := s.tokenBegin, s.tokenEnd
	s.tokenBegin, s.tokenEnd = -1, -1

	if begin >= 0 && end >= 0 {
		inQuotes := false
		for i := begin; i <= end; i++ {
			c := s.buf[i]
			if c == '"' {
				inQuotes = !inQuotes
			}
			if !inQuotes && isSpaceOrNewLine(c) {
				return textError(s.line, s.column, "unexpected whitespace in token")
			}
		}
		if inQuotes {
			return textError(s.line, s.column, "non-terminated double quotes")
		}
		s.tokens = append(s.tokens, newTextToken(s.buf, begin, end+1, kind, s.line, s.column))
		return nil
	}

	if mustHaveToken {
		return textError(s.line, s.column, "unexpected character, expected data token")
	}
	return nil
}

func (s *textScanner) emitSingle(kind TokenKind) {
	s.tokens = append(s.tokens, newTextToken(s.buf, s.cursor, s.cursor+1, kind, s.line, s.column))
}
