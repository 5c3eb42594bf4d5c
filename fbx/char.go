package fbx

// tabWidth is how many columns a tab advances in diagnostics.
const tabWidth = 4

func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r'
}

func isSpaceOrNewLine(c byte) bool {
	return c == ' ' || c == '\t' || isLineEnd(c)
}

func advanceColumn(column uint32, c byte) uint32 {
	if c == '\t' {
		return column + tabWidth
	}
	return column + 1
}
