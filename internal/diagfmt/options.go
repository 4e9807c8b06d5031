package diagfmt

import (
	"io"
	"slices"
)

// Names of the built-in output formats.
const (
	FormatDefault       = "default"
	FormatPylint        = "pylint"
	FormatJSON          = "json"
	FormatQuietFilename = "quiet-filename"
	FormatQuietNothing  = "quiet-nothing"
)

var formats = []string{FormatDefault, FormatPylint, FormatJSON, FormatQuietFilename, FormatQuietNothing}

// Formats returns the known format names.
func Formats() []string { return slices.Clone(formats) }

// Options configures a Formatter.
type Options struct {
	Format     string
	ShowSource bool
	OutputFile string    // пусто - пишем в Stdout
	Color      bool      // игнорируется при записи в файл
	Stdout     io.Writer // nil - os.Stdout
}
