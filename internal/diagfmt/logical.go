package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"flint/internal/processor"
)

// LogicalOutput is one logical line with where it came from.
type LogicalOutput struct {
	Row      int                `json:"row"`
	Col      int                `json:"col"`
	Indent   int                `json:"indent"`
	Text     string             `json:"text"`
	Comments string             `json:"comments,omitempty"`
	Mapping  []processor.Offset `json:"mapping,omitempty"`
}

// LogicalFromLine converts a built logical line for output.
func LogicalFromLine(line processor.LogicalLine, indent int) LogicalOutput {
	out := LogicalOutput{Indent: indent, Text: line.Text, Comments: line.Comments, Mapping: line.Mapping}
	if len(line.Mapping) > 0 {
		out.Row, out.Col = line.Mapping[0].Pos.Row, line.Mapping[0].Pos.Col
	}
	return out
}

// FormatLogicalPretty prints one logical line per row; with mapping set
// each line is followed by its offset table.
func FormatLogicalPretty(w io.Writer, lines []LogicalOutput, mapping bool) error {
	for _, l := range lines {
		text := l.Text
		if text == "" {
			text = l.Comments
		}
		if _, err := fmt.Fprintf(w, "%4d:%-3d %s%s\n", l.Row, l.Col+1, strings.Repeat(" ", l.Indent), text); err != nil {
			return err
		}
		if !mapping {
			continue
		}
		for _, o := range l.Mapping {
			if _, err := fmt.Fprintf(w, "          %4d -> %s\n", o.Logical, o.Pos); err != nil {
				return err
			}
		}
	}
	return nil
}

func FormatLogicalJSON(w io.Writer, lines []LogicalOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(lines)
}
