package source

import (
	"path/filepath"
	"strings"
)

const (
	bomRune   = "\uFEFF"
	bomLatin1 = "\u00ef\u00bb\u00bf" // UTF-8 BOM, прочитанный как Latin-1
)

// SplitLines splits text into physical lines, keeping each terminator.
// "\n", "\r\n" and a lone "\r" end a line; a trailing fragment without
// a terminator becomes the last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// StripBOM removes a byte order mark from the first line only.
// Both the decoded U+FEFF form and its Latin-1 three-character form are recognised.
// It reports whether a mark was removed.
func StripBOM(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	switch {
	case strings.HasPrefix(lines[0], bomRune):
		lines[0] = lines[0][len(bomRune):]
		return true
	case strings.HasPrefix(lines[0], bomLatin1):
		lines[0] = lines[0][len(bomLatin1):]
		return true
	}
	return false
}

// TrimEOL returns the line without its terminator.
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
