package source

type (
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, generated).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	// FileStdin marks a file read from standard input.
	FileStdin
	// FileHadBOM marks a file whose first line carried a byte order mark.
	FileHadBOM
	// FileLatin1Fallback marks a file that failed to decode and was read as Latin-1.
	FileLatin1Fallback
)

// StdinName is the name given to sources read from standard input.
const StdinName = "stdin"

// File captures the decoded physical lines of a single source file.
type File struct {
	Path     string
	Lines    []string // каждая строка со своим терминатором
	Encoding string   // имя кодировки, которой декодирован файл
	Hash     [32]byte // sha256 исходных байт
	Flags    FileFlags
}
