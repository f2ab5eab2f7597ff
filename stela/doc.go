// Package stela models the pages served by the Stela page-rendering API and
// decodes them leniently.
//
// The schema keeps evolving on the server while older clients stay in the
// wild, so every field and variant has one of four compatibility modes:
//
//   - Required: absence or a mismatched type fails the enclosing record.
//   - Optional-default: absence or failure yields the zero value and decoding
//     continues. Page's own fields use this mode.
//   - Sequence-skip: an element that fails is dropped, the rest keep their
//     order. Page.Sections uses this mode.
//   - Union-fallback: a tag or enum string this package does not know yields
//     the Unknown value. Every union and enum uses this mode.
//
// A required failure travels up until an optional-default or sequence-skip
// field absorbs it. If it reaches the root, decoding fails with a *FieldError.
// A payload that is not a JSON object fails with a *StructuralError.
//
// New fields must be added as optional-default or union-fallback. Renaming or
// removing a required field or variant breaks old clients and needs a new
// SchemaVersion.
//
// Unions are a wrapper struct holding a sealed interface, e.g.
//
//	stela.Motion{Value: &stela.MotionHref{URI: "/a/Hejmo"}}
//
// A nil Value is Unknown, and Unknown is encoded as the bare string "Unknown".
package stela

// SchemaVersion is the revision of the wire contract this package speaks.
// Revision 1 carried SocialData as tag pairs; revision 2 has named fields and
// adds the CfTurnstile and Tabs form inputs.
const SchemaVersion = 2
