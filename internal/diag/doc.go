// Package diag defines the finding model shared by the processor, the check
// runner and the formatters.
//
// # Purpose
//
//   - Provide plain, serialisable records for findings produced while a file
//     is processed: the code, the position and the physical line it points at.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     findings without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; running checks lives in internal/checker.
//
// # Data model
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – short identifier such as "E902"; the leading letter is the family.
//   - Filename, Line (1-based) and Column (0-based byte offset).
//   - PhysicalLine – the source line the finding refers to, used by
//     show-source rendering.
package diag
