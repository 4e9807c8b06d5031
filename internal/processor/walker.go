package processor

import (
	"fmt"
	"iter"
	"strings"

	"flint/internal/lexer"
	"flint/internal/token"
	"flint/internal/trace"
)

// Visitor receives the physical and logical lines found by ProcessTokens.
type Visitor interface {
	PhysicalLine(line string)
	LogicalLine(line LogicalLine)
}

// GenerateTokens tokenizes the file, pulling physical lines through NextLine
// so LineNumber follows the tokenizer. Every token is appended to Tokens
// before it is yielded. Tokens past the last line (trailing DEDENTs,
// ENDMARKER) end the sequence; an ENDMARKER still on the last line is
// yielded and then ends it. A tokenizer failure is yielded once as a
// *lexer.Error and ends the sequence.
func (p *FileProcessor) GenerateTokens() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		lx := lexer.New(p.NextLine, lexer.Options{Reporter: lexReporter{p.tracer}})
		for {
			tok, err := lx.Next()
			if err != nil {
				yield(token.Token{}, err)
				return
			}
			if tok.Start.Row > p.TotalLines {
				return
			}
			p.Tokens = append(p.Tokens, tok)
			if !yield(tok, nil) || tok.Kind == token.ENDMARKER {
				return
			}
		}
	}
}

// ProcessTokens walks the token stream once, handing every physical line
// and every logical line to v. It returns the tokenizer error, if any;
// lines seen before the error have already been visited.
func (p *FileProcessor) ProcessTokens(v Visitor) error {
	span := trace.Begin(p.tracer, trace.ScopePhase, "tokens", 0)
	parens := 0
	for tok, err := range p.GenerateTokens() {
		if err != nil {
			span.End(err.Error())
			return err
		}
		p.Statistics.Tokens++
		p.checkPhysicalEOL(tok, v)
		p.logToken(tok)
		switch {
		case tok.Kind == token.OP:
			parens = CountParentheses(parens, tok.Text)
		case parens == 0 && TokenIsNewline(tok):
			p.handleNewline(tok.Kind, v)
		}
	}
	if len(p.Tokens) > 0 && len(p.lines) > 0 {
		// хвост без NEWLINE: досылаем последнюю строку
		v.PhysicalLine(p.lines[len(p.lines)-1])
		p.runLogical(v)
	}
	span.WithExtra("tokens", fmt.Sprint(p.Statistics.Tokens)).
		WithExtra("logical", fmt.Sprint(p.Statistics.LogicalLines)).
		End("")
	return nil
}

func (p *FileProcessor) handleNewline(kind token.Kind, v Visitor) {
	switch {
	case kind == token.NEWLINE:
		p.runLogical(v)
		p.ResetBlankBefore()
	case len(p.Tokens) == 1:
		// строка состоит из одного NL
		p.VisitedNewBlankLine()
		p.DeleteFirstToken()
	default:
		p.runLogical(v)
	}
}

// runLogical builds the pending logical line and hands it to v.
// A line with no significant tokens is not a logical line: state is kept.
func (p *FileProcessor) runLogical(v Visitor) {
	line := p.BuildLogicalLine()
	if len(line.Mapping) == 0 {
		return
	}
	p.UpdateState(line.Mapping)
	v.LogicalLine(line)
	p.NextLogicalLine()
}

func (p *FileProcessor) checkPhysicalEOL(tok token.Token, v Visitor) {
	switch {
	case IsEOLToken(tok):
		line := tok.Line
		if line == "" {
			// синтетический NEWLINE в конце файла без перевода строки
			line = p.LineFor(tok.Start.Row)
		}
		v.PhysicalLine(line)
	case IsMultilineString(tok):
		_ = p.InsideMultiline(tok.Start.Row, func() error { //nolint:errcheck
			for line := range p.SplitLine(tok) {
				v.PhysicalLine(line + "\n")
			}
			return nil
		})
	}
}

// InsideMultiline runs fn with LineNumber set to line and Multiline set,
// and returns its error. Both fields are restored however fn exits.
func (p *FileProcessor) InsideMultiline(line int, fn func() error) error {
	saved := p.LineNumber
	p.LineNumber = line
	p.Multiline = true
	defer func() {
		p.Multiline = false
		p.LineNumber = saved
	}()
	return fn()
}

// SplitLine yields the lines of a multi-line token: its text split on "\n"
// without the final fragment. LineNumber advances after each yielded line.
// The sequence is single-use; ranging over it again yields nothing.
func (p *FileProcessor) SplitLine(tok token.Token) iter.Seq[string] {
	parts := strings.Split(tok.Text, "\n")
	parts = parts[:len(parts)-1]
	used := false
	return func(yield func(string) bool) {
		if used {
			return
		}
		used = true
		for _, line := range parts {
			if !yield(line) {
				return
			}
			p.LineNumber++
		}
	}
}

// logToken пишет токен в трассу на уровне debug: "[1:5] NAME foo" или "l.3 STRING ..."
func (p *FileProcessor) logToken(tok token.Token) {
	if !trace.Wants(p.tracer, trace.ScopeToken) {
		return
	}
	var pos string
	if tok.Start.Row == tok.End.Row {
		pos = fmt.Sprintf("[%d:%d]", tok.Start.Col, tok.End.Col)
	} else {
		pos = fmt.Sprintf("l.%d", tok.End.Row)
	}
	trace.Point(p.tracer, trace.ScopeToken, "token", fmt.Sprintf("%16s %s %q", pos, tok.Kind, tok.Text))
}

// lexReporter отправляет ERRORTOKEN'ы лексера в трассу.
type lexReporter struct{ t trace.Tracer }

func (r lexReporter) Report(kind string, pos token.Pos, msg string) {
	trace.Point(r.t, trace.ScopeToken, "lexer:"+kind, pos.String()+" "+msg)
}
