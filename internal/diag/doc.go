// Package diag defines the diagnostic model shared by the comment framer,
// the doc parser and the tag configuration loader.
//
// # Purpose
//
//   - Record grammar-level problems as data. A malformed or unknown tag never
//     aborts a parse; it becomes a Diagnostic in the parse's Log.
//   - Tie every message to a source.TextRange so the caller can map it back
//     to a line and column with its own position index.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form: CMT (comment framing), DOC (doc syntax), CFG (tag configuration).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the exact range the message is about.
//   - Notes – optional secondary ranges/messages.
//
// Log keeps diagnostics in emission order. Parsing the same input twice must
// yield identical logs, so nothing in this package sorts a Log in place.
//
// # Emitting diagnostics
//
// Phases report through a Reporter, usually with Errorf or Warnf.
// LogReporter appends into a Log, Dedup drops repeats, NopReporter drops
// everything. A nil Reporter is accepted by the helpers.
//
// Package diag performs no formatting beyond the one-line golden form;
// rendering lives in internal/diagfmt.
package diag
