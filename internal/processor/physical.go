package processor

// IndentCharCode is the finding code whose reports pin IndentChar.
const IndentCharCode = "E101"

// CheckPhysicalError lets a reported physical-line finding update state.
// Only IndentCharCode acts: when IndentChar is still unset and line starts
// with a space or a tab, that character becomes IndentChar.
func (p *FileProcessor) CheckPhysicalError(code, line string) {
	if code != IndentCharCode || p.IndentChar != 0 || line == "" {
		return
	}
	if c := line[0]; c == ' ' || c == '\t' {
		p.IndentChar = rune(c)
	}
}
