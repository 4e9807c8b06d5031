package processor

import "flint/internal/source"

// FileDirective is the line that excludes a whole file from checking.
const FileDirective = "# flint: noqa"

// ShouldIgnoreFile reports whether some physical line, terminator removed,
// is exactly FileDirective. Anything else on the line disables the match.
func (p *FileProcessor) ShouldIgnoreFile() bool {
	for _, line := range p.lines {
		if source.TrimEOL(line) == FileDirective {
			return true
		}
	}
	return false
}
