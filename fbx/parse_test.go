package fbx

import (
	"strings"
	"testing"
)

func textDataToken(t *testing.T, input string) *Token {
	t.Helper()
	tokens, err := Tokenize([]byte(input + " "))
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 {
		t.Fatalf("%q: got %d tokens", input, len(tokens))
	}
	return tokens[0]
}

func TestParseTextString(t *testing.T) {
	token := textDataToken(t, `"hello world"`)
	s, err := token.ParseAsString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello world" {
		t.Fatalf("got %q", s)
	}

	// unquoted and too-short literals are malformed
	for _, input := range []string{"hello", "x"} {
		_, err := textDataToken(t, input).ParseAsString()
		if err == nil {
			t.Fatalf("%q: expected error", input)
		}
	}
}

func TestParseTextNumbers(t *testing.T) {
	n, err := textDataToken(t, "-42").ParseAsInt()
	if err != nil {
		t.Fatal(err)
	}
	if n != -42 {
		t.Fatalf("got %d", n)
	}

	n64, err := textDataToken(t, "-9000000000").ParseAsInt64()
	if err != nil {
		t.Fatal(err)
	}
	if n64 != -9000000000 {
		t.Fatalf("got %d", n64)
	}

	id, err := textDataToken(t, "18446744073709551615").ParseAsID()
	if err != nil {
		t.Fatal(err)
	}
	if id != 18446744073709551615 {
		t.Fatalf("got %d", id)
	}

	// ids are unsigned
	if _, err := textDataToken(t, "-1").ParseAsID(); err == nil {
		t.Fatal("expected error")
	}

	f, err := textDataToken(t, "1.5").ParseAsFloat()
	if err != nil {
		t.Fatal(err)
	}
	if f != 1.5 {
		t.Fatalf("got %v", f)
	}

	if _, err := textDataToken(t, "abc").ParseAsInt(); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseWrongKind(t *testing.T) {
	tokens, err := Tokenize([]byte("Count: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	key := tokens[0]
	if key.Kind() != TokenKey {
		t.Fatalf("got %s", key.Kind())
	}

	if _, err := key.ParseAsInt(); err == nil || !strings.Contains(err.Error(), "expected DATA token") {
		t.Fatalf("got %v", err)
	}
	if _, err := key.ParseAsString(); err == nil || !strings.Contains(err.Error(), "expected DATA token") {
		t.Fatalf("got %v", err)
	}
	if _, err := key.ParseAsFloat(); err == nil || !strings.Contains(err.Error(), "expected DATA token") {
		t.Fatalf("got %v", err)
	}
}

func binaryDataToken(t *testing.T, prop []byte) *Token {
	t.Helper()
	input := buildBinary(7300, testNode{
		name:  "N",
		props: [][]byte{prop},
	})
	tokens, err := TokenizeBinary(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	return tokens[1]
}

func TestParseBinaryValues(t *testing.T) {
	// I tagged, little-endian 05 00 00 00
	n, err := binaryDataToken(t, []byte{'I', 0x05, 0x00, 0x00, 0x00}).ParseAsInt()
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("got %d", n)
	}

	// S tagged, length prefix 3, bytes a b c
	s, err := binaryDataToken(t, []byte{'S', 0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c'}).ParseAsString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "abc" {
		t.Fatalf("got %q", s)
	}

	// an embedded NUL truncates despite the declared length
	s, err = binaryDataToken(t, []byte{'S', 0x04, 0x00, 0x00, 0x00, 'a', 'b', 0x00, 'c'}).ParseAsString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "ab" {
		t.Fatalf("got %q", s)
	}

	n64, err := binaryDataToken(t, propL(-7)).ParseAsInt64()
	if err != nil {
		t.Fatal(err)
	}
	if n64 != -7 {
		t.Fatalf("got %d", n64)
	}

	id, err := binaryDataToken(t, propL(1234)).ParseAsID()
	if err != nil {
		t.Fatal(err)
	}
	if id != 1234 {
		t.Fatalf("got %d", id)
	}

	// F tagged float32 1.5
	f, err := binaryDataToken(t, []byte{'F', 0x00, 0x00, 0xc0, 0x3f}).ParseAsFloat()
	if err != nil {
		t.Fatal(err)
	}
	if f != 1.5 {
		t.Fatalf("got %v", f)
	}

	// D tagged float64 0.25, narrowed
	f, err = binaryDataToken(t, []byte{'D', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xd0, 0x3f}).ParseAsFloat()
	if err != nil {
		t.Fatal(err)
	}
	if f != 0.25 {
		t.Fatalf("got %v", f)
	}
}

func TestParseBinaryTagMismatch(t *testing.T) {
	token := binaryDataToken(t, []byte{'S', 0x00, 0x00, 0x00, 0x00})

	_, err := token.ParseAsInt()
	if err == nil || !strings.Contains(err.Error(), "expected 'I', got 'S'") {
		t.Fatalf("got %v", err)
	}
	_, err = token.ParseAsInt64()
	if err == nil || !strings.Contains(err.Error(), "expected 'L', got 'S'") {
		t.Fatalf("got %v", err)
	}
	_, err = token.ParseAsFloat()
	if err == nil || !strings.Contains(err.Error(), "expected 'F' or 'D', got 'S'") {
		t.Fatalf("got %v", err)
	}

	_, err = binaryDataToken(t, propI(1)).ParseAsString()
	if err == nil || !strings.Contains(err.Error(), "expected 'S', got 'I'") {
		t.Fatalf("got %v", err)
	}
}
