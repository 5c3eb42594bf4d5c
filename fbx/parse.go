package fbx

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
)

// The ParseAs accessors materialize a DATA token's value on demand. Binary
// tokens dispatch on the one-byte type tag at the start of their range; text
// tokens parse their literal. Tokens of any other kind are rejected.

func (t *Token) parseError(format string, args ...any) *Error {
	return errorAt(t.pos, format, args...)
}

func (t *Token) checkData() error {
	if t.kind != TokenData && t.kind != TokenBinaryData {
		return t.parseError("expected DATA token, got %s", t.kind)
	}
	return nil
}

// payload returns the n bytes following the type tag of a binary token,
// after checking they fit inside the token's range.
func (t *Token) payload(tag byte, n int) ([]byte, error) {
	if got := t.buf[t.begin]; got != tag {
		return nil, t.parseError("unexpected data type, expected '%c', got '%c'", tag, got)
	}
	if t.begin+1+n > t.end {
		return nil, t.parseError("token is too short to hold a '%c' value", tag)
	}
	return t.buf[t.begin+1 : t.begin+1+n], nil
}

func (t *Token) ParseAsString() (string, error) {
	if err := t.checkData(); err != nil {
		return "", err
	}

	if t.IsBinary() {
		if got := t.buf[t.begin]; got != 'S' {
			return "", t.parseError("unexpected data type, expected 'S', got '%c'", got)
		}
		if t.begin+5 > t.end {
			return "", t.parseError("token is too short to hold a string length")
		}
		length := int(binary.LittleEndian.Uint32(t.buf[t.begin+1:]))
		if t.begin+5+length > t.end {
			return "", t.parseError("string length is out of token range")
		}
		raw := t.buf[t.begin+5 : t.begin+5+length]
		// an embedded NUL terminates the string despite the explicit length
		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		return string(raw), nil
	}

	raw := t.buf[t.begin:t.end]
	if len(raw) < 2 {
		return "", t.parseError("token is too short to hold a string")
	}
	if raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", t.parseError("expected double quoted string")
	}
	return string(raw[1 : len(raw)-1]), nil
}

func (t *Token) ParseAsInt() (int32, error) {
	if err := t.checkData(); err != nil {
		return 0, err
	}

	if t.IsBinary() {
		raw, err := t.payload('I', 4)
		if err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint32(raw)), nil
	}

	v, err := strconv.ParseInt(t.Contents(), 10, 32)
	if err != nil {
		return 0, t.parseError("failed to parse integer: %s", t.Contents())
	}
	return int32(v), nil
}

func (t *Token) ParseAsInt64() (int64, error) {
	if err := t.checkData(); err != nil {
		return 0, err
	}

	if t.IsBinary() {
		raw, err := t.payload('L', 8)
		if err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(raw)), nil
	}

	v, err := strconv.ParseInt(t.Contents(), 10, 64)
	if err != nil {
		return 0, t.parseError("failed to parse int64: %s", t.Contents())
	}
	return v, nil
}

// ParseAsID reads the same 8 bytes as ParseAsInt64 but with unsigned
// semantics; object identifiers are never negative.
func (t *Token) ParseAsID() (uint64, error) {
	if err := t.checkData(); err != nil {
		return 0, err
	}

	if t.IsBinary() {
		raw, err := t.payload('L', 8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(raw), nil
	}

	v, err := strconv.ParseUint(t.Contents(), 10, 64)
	if err != nil {
		return 0, t.parseError("failed to parse id: %s", t.Contents())
	}
	return v, nil
}

func (t *Token) ParseAsFloat() (float32, error) {
	if err := t.checkData(); err != nil {
		return 0, err
	}

	if t.IsBinary() {
		switch t.buf[t.begin] {
		case 'F':
			raw, err := t.payload('F', 4)
			if err != nil {
				return 0, err
			}
			return math.Float32frombits(binary.LittleEndian.Uint32(raw)), nil
		case 'D':
			raw, err := t.payload('D', 8)
			if err != nil {
				return 0, err
			}
			return float32(math.Float64frombits(binary.LittleEndian.Uint64(raw))), nil
		}
		return 0, t.parseError("unexpected data type, expected 'F' or 'D', got '%c'", t.buf[t.begin])
	}

	v, err := strconv.ParseFloat(t.Contents(), 32)
	if err != nil {
		return 0, t.parseError("failed to parse float: %s", t.Contents())
	}
	return float32(v), nil
}
