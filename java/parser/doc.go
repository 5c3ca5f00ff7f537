// Package parser turns Java 8–21 source text into an arena-backed
// abstract syntax tree for downstream formatting and static-analysis
// tools.
//
// The pipeline is two stages: Lexer tokenizes (folding \uXXXX escapes
// first so they can appear anywhere a raw character can); Parse drives a
// recursive-descent grammar that allocates directly into an Arena rather
// than building a pointer-linked tree. Context-sensitive keyword
// spellings (var, yield, record, sealed, permits, and the module-info
// directive words) always lex as plain identifiers; the parser
// recognizes them by spelling at the grammar positions where they can
// start a contextual construct. Classify offers the same
// position-dependent classification as a standalone function.
//
// The arena is column-oriented and append-only: each node is a fixed
// NodeRecord{Kind, Start, End, Attribute} and, because a parent is only
// ever allocated once all of its children are, allocation order is a
// post-order traversal whose last entry is the root. Ambiguous
// productions (a parenthesized cast vs. a parenthesized expression, a
// typed lambda parameter vs. a local variable declaration, a pattern
// case label vs. a constant case label) are resolved by attempting one
// parse and rewinding both the token cursor and the arena watermark via
// Arena.TruncateTo when it doesn't pan out; this package's speculative
// parses never leave partially-applied nodes behind.
//
// Parse failures are not collected: this parser stops at the first
// syntax error, version-gated feature use, or depth-limit violation and
// returns a single ParseFailure rather than attempting recovery. Callers
// needing best-effort results over broken input should wrap this
// package rather than expect it to produce one.
package parser
