package source

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	encodingUTF8   = "utf-8"
	encodingLatin1 = "latin-1"
)

// ErrUnknownEncoding is returned when a coding cookie names an encoding we cannot decode.
var ErrUnknownEncoding = errors.New("unknown encoding")

// PEP 263: "# -*- coding: latin-1 -*-" или "# vim: set fileencoding=utf-8 :"
var cookieRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// Decode converts raw file bytes into text.
// The coding cookie on one of the first two lines selects the encoding,
// UTF-8 is the default. Content that cannot be decoded is read as Latin-1,
// in which case the returned name is "latin-1" and fellBack is true.
func Decode(content []byte) (text, name string, fellBack bool) {
	name = detectCookie(content)
	decoded, err := decodeAs(content, name)
	if err == nil {
		return decoded, name, false
	}
	latin, _ := decodeAs(content, encodingLatin1)
	return latin, encodingLatin1, true
}

func decodeAs(content []byte, name string) (string, error) {
	switch name {
	case encodingUTF8:
		if !utf8.Valid(content) {
			return "", fmt.Errorf("%s: invalid byte sequence", name)
		}
		return string(content), nil
	case encodingLatin1:
		return decodeWith(charmap.ISO8859_1, content)
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return decodeWith(enc, content)
}

func decodeWith(enc encoding.Encoding, content []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// detectCookie ищет coding cookie в первых двух строках.
// Вторая строка учитывается, только если первая пустая или комментарий.
func detectCookie(content []byte) string {
	first, rest, _ := bytes.Cut(content, []byte("\n"))
	if name, ok := cookieName(first); ok {
		return name
	}
	trimmed := bytes.TrimLeft(first, " \t\f\r")
	if len(trimmed) != 0 && trimmed[0] != '#' {
		return encodingUTF8
	}
	second, _, _ := bytes.Cut(rest, []byte("\n"))
	if name, ok := cookieName(second); ok {
		return name
	}
	return encodingUTF8
}

func cookieName(line []byte) (string, bool) {
	m := cookieRe.FindSubmatch(line)
	if m == nil {
		return "", false
	}
	return normalizeEncodingName(string(m[1])), true
}

// normalizeEncodingName сводит python-имена кодировок к тем, что понимает IANA индекс.
func normalizeEncodingName(name string) string {
	n := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	switch {
	case n == "utf-8" || n == "utf8" || strings.HasPrefix(n, "utf-8-"):
		return encodingUTF8
	case n == "latin-1" || n == "latin1" || n == "iso-8859-1" || n == "iso-latin-1" ||
		strings.HasPrefix(n, "latin-1-") || strings.HasPrefix(n, "iso-8859-1-") || strings.HasPrefix(n, "iso-latin-1-"):
		return encodingLatin1
	}
	return n
}
