// Package record defines the decoded unit of an input stream and the ways
// a store key is derived from it.
//
// A Record is an untyped string-keyed mapping. The only structural
// requirement kvload places on it is a usable key:
//
//   - FieldKey reads a named field (default "id"). Strings and binary values
//     are used verbatim, integers are written in base 10.
//   - EntryKey expects exactly one top-level entry and uses its name, which
//     matches records shaped like {"Q42": {"label": ..., "properties": ...}}.
//
// Key errors wrap kvload.ErrMissingKey or kvload.ErrInvalidKey.
package record
