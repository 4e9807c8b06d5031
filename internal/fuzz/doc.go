// Package fuzztests houses Go fuzz harnesses for the per-file pipeline
// (source -> lexer -> parser -> processor). They guard against panics and
// hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через декодер, лексер, парсер и
// сборку логических строк.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/processor.

package fuzztests
