// Package toon implements TOON (Token-Oriented Object Notation), a
// line-oriented, indentation-sensitive text format for JSON-compatible data
// designed to use fewer tokens than JSON when read by a language model while
// staying easy for a human to read and a machine to parse deterministically.
//
// A TOON document is a scalar, an object block, or an array block:
//
//	name: Ada
//	tags[2]: admin,staff
//	friends[2]{id,name}:
//	  1,Grace
//	  2,Alan
//	notes[2]:
//	  - first
//	  - second: detail
//
// Arrays pick one of three layouts depending on their contents: an inline
// comma/tab/pipe-separated list of primitives, a tabular block when every
// element is an object sharing the same field set, or a list of "- "
// prefixed items otherwise. Object keys that form a chain of single-key
// objects may be collapsed into a single dotted key on encode, and expanded
// back on decode.
//
// Encode and Decode are the two synchronous entry points. Events exposes
// the same decode as a lazy sequence of structural events for callers that
// want to consume a document without holding the whole tree in memory, and
// DecodeEventsAsync adapts that sequence onto a channel for concurrent
// consumers.
package toon
