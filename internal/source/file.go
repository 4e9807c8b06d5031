package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Load reads a file from disk, decodes it and splits it into physical lines.
// The byte order mark is stripped from the first line.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(normalizePath(path), content, 0), nil
}

// FromBytes builds a File from raw bytes with the given name.
func FromBytes(name string, content []byte, flags FileFlags) *File {
	text, enc, fellBack := Decode(content)
	if fellBack {
		flags |= FileLatin1Fallback
	}
	f := &File{
		Path:     name,
		Lines:    SplitLines(text),
		Encoding: enc,
		Hash:     sha256.Sum256(content),
		Flags:    flags,
	}
	if StripBOM(f.Lines) {
		f.Flags |= FileHadBOM
	}
	return f
}

// FromText builds a virtual File from already decoded text.
func FromText(name, text string) *File {
	return FromLines(name, SplitLines(text))
}

// FromLines builds a virtual File from physical lines; the slice is used as is.
func FromLines(name string, lines []string) *File {
	f := &File{
		Path:     name,
		Lines:    lines,
		Encoding: encodingUTF8,
		Hash:     sha256.Sum256([]byte(strings.Join(lines, ""))),
		Flags:    FileVirtual,
	}
	if StripBOM(f.Lines) {
		f.Flags |= FileHadBOM
	}
	return f
}

// StdinReader returns the whole standard input as text.
type StdinReader func() (string, error)

// FromStdin builds a File named "stdin" from the text returned by read.
func FromStdin(read StdinReader) (*File, error) {
	if read == nil {
		read = ReadStdin
	}
	text, err := read()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", StdinName, err)
	}
	f := FromText(StdinName, text)
	f.Flags = f.Flags&^FileVirtual | FileStdin
	return f, nil
}

var readStdinOnce = sync.OnceValues(func() (string, error) {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	text, _, _ := Decode(content)
	return text, nil
})

// ReadStdin reads standard input once per process and returns the decoded text.
// Later calls return the same value.
func ReadStdin() (string, error) {
	return readStdinOnce()
}

// Text returns the full source as one string.
func (f *File) Text() string {
	return strings.Join(f.Lines, "")
}
