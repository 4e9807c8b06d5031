package processor

import (
	"strings"

	"flint/internal/token"
	"flint/internal/trace"
)

// Offset ties a position in the logical line to the physical position
// where the corresponding token ends.
type Offset struct {
	Logical int
	Pos     token.Pos
}

// Mapping translates logical-line offsets back to the physical source.
// The first entry is (0, start of the first token).
type Mapping []Offset

// Find maps a logical offset to a physical (row, col).
// ok is false when offset lies past the end of the line.
func (m Mapping) Find(offset int) (pos token.Pos, ok bool) {
	for _, o := range m {
		if offset <= o.Logical {
			return token.Pos{Row: o.Pos.Row, Col: o.Pos.Col + offset - o.Logical}, true
		}
	}
	return token.Pos{}, false
}

// LogicalLine is one assembled logical line.
type LogicalLine struct {
	Comments string
	Text     string
	Mapping  Mapping
}

// BuildLogicalLine assembles the logical line from the pending tokens,
// stores it in LogicalLine and counts it in Statistics.
func (p *FileProcessor) BuildLogicalLine() LogicalLine {
	comments, parts, mapping := p.buildLogicalLineTokens()
	p.LogicalLine = strings.Join(parts, "")
	p.Statistics.LogicalLines++
	if trace.Wants(p.tracer, trace.ScopeToken) {
		trace.Point(p.tracer, trace.ScopeToken, "logical", p.LogicalLine)
	}
	return LogicalLine{
		Comments: strings.Join(comments, ""),
		Text:     p.LogicalLine,
		Mapping:  mapping,
	}
}

func (p *FileProcessor) buildLogicalLineTokens() (comments, parts []string, mapping Mapping) {
	length := 0
	var prev token.Pos
	havePrev := false
	for _, tok := range p.Tokens {
		if tok.Kind.Skip() || tok.Kind == token.ENDMARKER {
			continue
		}
		if mapping == nil {
			mapping = Mapping{{Logical: 0, Pos: tok.Start}}
		}
		if tok.Kind == token.COMMENT {
			comments = append(comments, tok.Text)
			continue
		}
		text := tok.Text
		if tok.Kind == token.STRING {
			text = MutateString(text)
		}
		if havePrev {
			switch {
			case prev.Row != tok.Start.Row:
				// перенос между строками: одна пробельная позиция,
				// кроме как после открывающей и перед закрывающей скобкой
				prevChar := p.charAt(prev.Row, prev.Col-1)
				if prevChar == ',' || (!strings.ContainsRune("{[(", rune(prevChar)) && !strings.Contains("}])", text)) {
					text = " " + text
				}
			case prev.Col != tok.Start.Col:
				if prev.Col <= tok.Start.Col && tok.Start.Col <= len(tok.Line) {
					text = tok.Line[prev.Col:tok.Start.Col] + text
				}
			}
		}
		parts = append(parts, text)
		length += len(text)
		mapping = append(mapping, Offset{Logical: length, Pos: tok.End})
		prev, havePrev = tok.End, true
	}
	return comments, parts, mapping
}

// charAt returns the byte at (row, col) of the physical source, 0 when out of range.
func (p *FileProcessor) charAt(row, col int) byte {
	line := p.LineFor(row)
	if col < 0 {
		col += len(line)
	}
	if col < 0 || col >= len(line) {
		return 0
	}
	return line[col]
}

// UpdateState records the indentation of the logical line that starts at
// mapping[0] and raises BlankBefore to the blank lines seen.
func (p *FileProcessor) UpdateState(mapping Mapping) {
	if len(mapping) == 0 {
		return
	}
	start := mapping[0].Pos
	line := p.LineFor(start.Row)
	if start.Col <= len(line) {
		line = line[:start.Col]
	}
	p.IndentLevel = ExpandIndent(line)
	if p.BlankBefore < p.BlankLines {
		p.BlankBefore = p.BlankLines
	}
}

// NextLogicalLine closes the current logical line. A non-empty line becomes
// PreviousLogical; blank-line count, pending tokens and Noqa always reset.
func (p *FileProcessor) NextLogicalLine() {
	if p.LogicalLine != "" {
		p.PreviousIndentLevel = p.IndentLevel
		p.PreviousLogical = p.LogicalLine
		if p.IndentLevel == 0 {
			p.PreviousUnindentedLogicalLine = p.LogicalLine
		}
	}
	p.BlankLines = 0
	p.Tokens = nil
	p.Noqa = false
}
