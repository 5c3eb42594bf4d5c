package fbx

import (
	"bytes"
	"encoding/binary"
)

// binaryMagicString is the 21-byte signature opening every binary FBX file.
// Two unused bytes (0x1A 0x00) and a little-endian uint32 version follow it.
const binaryMagicString = "Kaydara FBX Binary  \x00"

var binaryMagic = []byte(binaryMagicString)

const binaryHeaderLength = len(binaryMagicString) + 2 + 4

// wideVersion is the first format version whose node records use 64-bit
// length fields and a 25-byte scope sentinel instead of 32-bit and 13.
const wideVersion = 7500

// HasBinaryMagic reports whether the buffer opens with the binary FBX
// signature. Buffers without it hold the text encoding.
func HasBinaryMagic(input []byte) bool {
	return len(input) >= len(binaryMagic) && bytes.Equal(input[:len(binaryMagic)], binaryMagic)
}

type binaryScanner struct {
	buf    []byte
	cursor int
	wide   bool

	tokens []*Token
}

// TokenizeBinary scans a binary-encoded FBX buffer into the same flat token
// sequence the text tokenizer produces. Node names become KEY tokens,
// property records become BINARY_DATA tokens separated by commas, and nested
// scopes are wrapped in bracket tokens. Token positions are byte offsets.
func TokenizeBinary(input []byte) ([]*Token, error) {
	if len(input) < binaryHeaderLength {
		return nil, binaryError(0, "file is too short")
	}
	if !HasBinaryMagic(input) {
		return nil, binaryError(0, "magic bytes not found")
	}

	version := binary.LittleEndian.Uint32(input[len(binaryMagic)+2:])
	s := &binaryScanner{
		buf:    input,
		cursor: binaryHeaderLength,
		wide:   version >= wideVersion,
	}

	for s.cursor < len(s.buf) {
		more, err := s.readScope(len(s.buf))
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return s.tokens, nil
}

// sentinelLength is the size of the all-zero record terminating a nested
// scope list.
func (s *binaryScanner) sentinelLength() int {
	if s.wide {
		return 25
	}
	return 13
}

// readScope reads one node record ending no later than end. It reports
// false, with no error, on the null record that terminates a scope list.
func (s *binaryScanner) readScope(end int) (bool, error) {
	endOffset, err := s.readLength()
	if err != nil {
		return false, err
	}
	if endOffset == 0 {
		// null record
		return false, nil
	}
	if endOffset > uint64(end) {
		return false, binaryError(uint64(s.cursor), "block offset is out of range")
	}
	if endOffset < uint64(s.cursor) {
		return false, binaryError(uint64(s.cursor), "block offset is negative out of range")
	}

	propCount, err := s.readLength()
	if err != nil {
		return false, err
	}
	propListLen, err := s.readLength()
	if err != nil {
		return false, err
	}
	nameLen, err := s.readByte()
	if err != nil {
		return false, err
	}

	nameBegin := s.cursor
	if err := s.skip(int(nameLen)); err != nil {
		return false, err
	}
	s.tokens = append(s.tokens, newBinaryToken(s.buf, nameBegin, s.cursor, TokenKey, uint64(nameBegin)))

	propBegin := s.cursor
	for i := uint64(0); i < propCount; i++ {
		dataBegin := s.cursor
		if err := s.readPropertyRecord(); err != nil {
			return false, err
		}
		s.tokens = append(s.tokens, newBinaryToken(s.buf, dataBegin, s.cursor, TokenBinaryData, uint64(dataBegin)))
		if i != propCount-1 {
			s.tokens = append(s.tokens, newBinaryToken(s.buf, s.cursor, s.cursor, TokenComma, uint64(s.cursor)))
		}
	}
	if uint64(s.cursor-propBegin) != propListLen {
		return false, binaryError(uint64(s.cursor), "property list length not reached, data is corrupt")
	}

	if uint64(s.cursor) < endOffset {
		sentinel := s.sentinelLength()
		if endOffset-uint64(s.cursor) < uint64(sentinel) {
			return false, binaryError(uint64(s.cursor), "insufficient padding bytes at block end")
		}

		s.tokens = append(s.tokens, newBinaryToken(s.buf, s.cursor, s.cursor, TokenOpenBracket, uint64(s.cursor)))
		nestedEnd := int(endOffset) - sentinel
		for s.cursor < nestedEnd {
			if _, err := s.readScope(nestedEnd); err != nil {
				return false, err
			}
		}
		s.tokens = append(s.tokens, newBinaryToken(s.buf, s.cursor, s.cursor, TokenCloseBracket, uint64(s.cursor)))

		for i := 0; i < sentinel; i++ {
			if s.buf[s.cursor+i] != 0 {
				return false, binaryError(uint64(s.cursor+i), "scope sentinel is not all zero")
			}
		}
		s.cursor += sentinel
	}

	if uint64(s.cursor) != endOffset {
		return false, binaryError(uint64(s.cursor), "scope length not reached, data is corrupt")
	}
	return true, nil
}

// readPropertyRecord consumes one typed property: a one-byte type code and
// its payload. Array payloads stay opaque; decompressing them is the
// structural parser's business.
func (s *binaryScanner) readPropertyRecord() error {
	code, err := s.readByte()
	if err != nil {
		return err
	}

	switch code {
	case 'Y':
		return s.skip(2)
	case 'C':
		return s.skip(1)
	case 'I', 'F':
		return s.skip(4)
	case 'D', 'L':
		return s.skip(8)

	case 'S', 'R':
		length, err := s.readUint32()
		if err != nil {
			return err
		}
		return s.skip(int(length))

	case 'b', 'c', 'f', 'd', 'l', 'i':
		count, err := s.readUint32()
		if err != nil {
			return err
		}
		encoding, err := s.readUint32()
		if err != nil {
			return err
		}
		compLen, err := s.readUint32()
		if err != nil {
			return err
		}
		if encoding == 0 {
			var stride uint32
			switch code {
			case 'b', 'c':
				stride = 1
			case 'f', 'i':
				stride = 4
			case 'd', 'l':
				stride = 8
			}
			// widen before multiplying, a crafted count must not wrap
			if uint64(count)*uint64(stride) != uint64(compLen) {
				return binaryError(uint64(s.cursor), "cannot read array data, invalid uncompressed length")
			}
		} else if encoding != 1 {
			return binaryError(uint64(s.cursor), "cannot read array data, unknown encoding")
		}
		return s.skip(int(compLen))
	}

	return binaryError(uint64(s.cursor-1), "cannot read property, unexpected type code: %c", code)
}

func (s *binaryScanner) readByte() (byte, error) {
	if s.cursor >= len(s.buf) {
		return 0, binaryError(uint64(s.cursor), "cannot read byte, out of bounds")
	}
	b := s.buf[s.cursor]
	s.cursor++
	return b, nil
}

func (s *binaryScanner) readUint32() (uint32, error) {
	if s.cursor+4 > len(s.buf) {
		return 0, binaryError(uint64(s.cursor), "cannot read word, out of bounds")
	}
	v := binary.LittleEndian.Uint32(s.buf[s.cursor:])
	s.cursor += 4
	return v, nil
}

func (s *binaryScanner) readUint64() (uint64, error) {
	if s.cursor+8 > len(s.buf) {
		return 0, binaryError(uint64(s.cursor), "cannot read double word, out of bounds")
	}
	v := binary.LittleEndian.Uint64(s.buf[s.cursor:])
	s.cursor += 8
	return v, nil
}

// readLength reads a record length field: 32 bits before format 7500, 64
// bits from it on.
func (s *binaryScanner) readLength() (uint64, error) {
	if s.wide {
		return s.readUint64()
	}
	v, err := s.readUint32()
	return uint64(v), err
}

func (s *binaryScanner) skip(n int) error {
	if s.cursor+n > len(s.buf) {
		return binaryError(uint64(s.cursor), "unexpected end of file")
	}
	s.cursor += n
	return nil
}
