package stela

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// decoder walks a payload one json.RawMessage at a time. It carries the path
// of the value being decoded and the report that leniency rules write to.
type decoder struct {
	path   string
	report *Report
}

func (d decoder) field(name string) decoder {
	if d.path == "" {
		return decoder{path: name, report: d.report}
	}
	return decoder{path: d.path + "." + name, report: d.report}
}

func (d decoder) index(i int) decoder {
	return decoder{path: d.path + "[" + strconv.Itoa(i) + "]", report: d.report}
}

func (d decoder) fail(err error) error {
	return &FieldError{Path: d.path, Err: err}
}

func (d decoder) note(kind IssueKind, err error) {
	d.report.add(Issue{Path: d.path, Kind: kind, Err: err})
}

func (d decoder) unknown(tag string) {
	if tag == unknownTag {
		return
	}
	d.report.add(Issue{Path: d.path, Kind: IssueUnknownVariant, Tag: tag})
}

const (
	kindObject  = "object"
	kindArray   = "array"
	kindString  = "string"
	kindNumber  = "number"
	kindBoolean = "boolean"
	kindNull    = "null"
	kindEmpty   = "nothing"
)

func kindOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return kindEmpty
	}
	switch raw[0] {
	case '{':
		return kindObject
	case '[':
		return kindArray
	case '"':
		return kindString
	case 't', 'f':
		return kindBoolean
	case 'n':
		return kindNull
	default:
		return kindNumber
	}
}

func isNull(raw json.RawMessage) bool {
	return kindOf(raw) == kindNull
}

func typeError(want string, raw json.RawMessage) error {
	return fmt.Errorf("%w: expected %s, found %s", ErrInvalidType, want, kindOf(raw))
}

// fields is a decoded JSON object. The first failure sticks in err and turns
// every later accessor into a no-op, so record decoders read as a single
// composite literal followed by one error check.
type fields struct {
	d   decoder
	raw map[string]json.RawMessage
	err error
}

func (d decoder) record(raw json.RawMessage) (*fields, error) {
	if kindOf(raw) != kindObject {
		return nil, d.fail(typeError(kindObject, raw))
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, d.fail(err)
	}
	return &fields{d: d, raw: m}, nil
}

func (d decoder) array(raw json.RawMessage) ([]json.RawMessage, error) {
	if kindOf(raw) != kindArray {
		return nil, d.fail(typeError(kindArray, raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, d.fail(err)
	}
	return items, nil
}

// required decodes a field that must be present.
func required[T any](f *fields, name string, dec func(decoder, json.RawMessage) (T, error)) T {
	var zero T
	if f.err != nil {
		return zero
	}
	raw, ok := f.raw[name]
	if !ok {
		f.err = f.d.field(name).fail(ErrMissingField)
		return zero
	}
	v, err := dec(f.d.field(name), raw)
	if err != nil {
		f.err = err
		return zero
	}
	return v
}

// optional decodes a field that may be absent or null. A present value of the
// wrong shape is still an error.
func optional[T any](f *fields, name string, dec func(decoder, json.RawMessage) (T, error)) *T {
	if f.err != nil {
		return nil
	}
	raw, ok := f.raw[name]
	if !ok || isNull(raw) {
		return nil
	}
	v, err := dec(f.d.field(name), raw)
	if err != nil {
		f.err = err
		return nil
	}
	return &v
}

// defaulted decodes an optional field whose failure is absorbed: the field
// becomes nil and the enclosing record carries on.
func defaulted[T any](f *fields, name string, dec func(decoder, json.RawMessage) (T, error)) *T {
	if f.err != nil {
		return nil
	}
	raw, ok := f.raw[name]
	if !ok || isNull(raw) {
		return nil
	}
	d := f.d.field(name)
	mark := d.report.mark()
	v, err := dec(d, raw)
	if err != nil {
		d.report.rollback(mark)
		d.note(IssueDefaulted, err)
		return nil
	}
	return &v
}

// defaultedValue is defaulted for fields held by value.
func defaultedValue[T any](f *fields, name string, dec func(decoder, json.RawMessage) (T, error)) T {
	if v := defaulted(f, name, dec); v != nil {
		return *v
	}
	var zero T
	return zero
}

// defaultedPresent is defaultedValue for a field whose key must be present.
// A missing key fails the record; a value that fails to decode is absorbed.
func defaultedPresent[T any](f *fields, name string, dec func(decoder, json.RawMessage) (T, error)) T {
	if f.err == nil {
		if _, ok := f.raw[name]; !ok {
			f.err = f.d.field(name).fail(ErrMissingField)
		}
	}
	return defaultedValue(f, name, dec)
}

// sliceOf lifts an element decoder to a strict sequence decoder: one bad
// element fails the whole sequence.
func sliceOf[T any](dec func(decoder, json.RawMessage) (T, error)) func(decoder, json.RawMessage) ([]T, error) {
	return func(d decoder, raw json.RawMessage) ([]T, error) {
		items, err := d.array(raw)
		if err != nil {
			return nil, err
		}
		var out []T
		for i, item := range items {
			v, err := dec(d.index(i), item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// skipErrors lifts an element decoder to a sequence decoder that drops
// elements it cannot decode, keeping the survivors in order.
func skipErrors[T any](dec func(decoder, json.RawMessage) (T, error)) func(decoder, json.RawMessage) ([]T, error) {
	return func(d decoder, raw json.RawMessage) ([]T, error) {
		items, err := d.array(raw)
		if err != nil {
			return nil, err
		}
		var out []T
		for i, item := range items {
			di := d.index(i)
			mark := di.report.mark()
			v, err := dec(di, item)
			if err != nil {
				di.report.rollback(mark)
				di.note(IssueSkipped, &ElementError{Index: i, Err: err})
				continue
			}
			out = append(out, v)
		}
		return out, nil
	}
}

func decodeString(d decoder, raw json.RawMessage) (string, error) {
	if kindOf(raw) != kindString {
		return "", d.fail(typeError(kindString, raw))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", d.fail(err)
	}
	return s, nil
}

func decodeBool(d decoder, raw json.RawMessage) (bool, error) {
	if kindOf(raw) != kindBoolean {
		return false, d.fail(typeError(kindBoolean, raw))
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, d.fail(err)
	}
	return b, nil
}

func decodeFloat32(d decoder, raw json.RawMessage) (float32, error) {
	if kindOf(raw) != kindNumber {
		return 0, d.fail(typeError(kindNumber, raw))
	}
	var n float32
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, d.fail(err)
	}
	return n, nil
}

func decodeInt32(d decoder, raw json.RawMessage) (int32, error) {
	if kindOf(raw) != kindNumber {
		return 0, d.fail(typeError(kindNumber, raw))
	}
	var n int32
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, d.fail(err)
	}
	return n, nil
}

func decodeUint32(d decoder, raw json.RawMessage) (uint32, error) {
	if kindOf(raw) != kindNumber {
		return 0, d.fail(typeError(kindNumber, raw))
	}
	var n uint32
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, d.fail(err)
	}
	return n, nil
}

// decodeEnum matches a bare string against names, where names[0] is the
// Unknown sentinel. Unrecognised strings fall back to the zero value.
func decodeEnum[E ~uint8](d decoder, raw json.RawMessage, names []string) (E, error) {
	s, err := decodeString(d, raw)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return E(i), nil
		}
	}
	d.unknown(s)
	return 0, nil
}

// decodeUnion decodes an externally tagged union: {"Tag": payload}. An
// unrecognised tag, or any bare string that is not a payload-carrying tag,
// yields the zero V, which callers treat as Unknown. lookup returns the payload
// decoder for a declared tag and nil for anything else.
func decodeUnion[V any](d decoder, raw json.RawMessage, lookup func(tag string) func(decoder, json.RawMessage) (V, error)) (V, error) {
	var zero V
	switch kindOf(raw) {
	case kindString:
		tag, err := decodeString(d, raw)
		if err != nil {
			return zero, err
		}
		if lookup(tag) != nil {
			return zero, d.fail(fmt.Errorf("%w: variant %q needs a payload", ErrUnionShape, tag))
		}
		d.unknown(tag)
		return zero, nil
	case kindObject:
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return zero, d.fail(err)
		}
		if len(m) != 1 {
			return zero, d.fail(fmt.Errorf("%w: expected one tag, found %d", ErrUnionShape, len(m)))
		}
		for tag, payload := range m {
			dec := lookup(tag)
			if dec == nil {
				d.unknown(tag)
				return zero, nil
			}
			v, err := dec(d.field(tag), payload)
			if err != nil {
				return zero, err
			}
			return v, nil
		}
	}
	return zero, d.fail(typeError("tagged union", raw))
}

// as adapts a record decoder to a union variant decoder. *T must implement V.
func as[V any, T any](dec func(decoder, json.RawMessage) (T, error)) func(decoder, json.RawMessage) (V, error) {
	return func(d decoder, raw json.RawMessage) (V, error) {
		v, err := dec(d, raw)
		if err != nil {
			var zero V
			return zero, err
		}
		return any(&v).(V), nil
	}
}

// unmarshalInto backs the UnmarshalJSON methods so json.Unmarshal gets the
// same leniency as the package entry points.
func unmarshalInto[T any](dst *T, data []byte, dec func(decoder, json.RawMessage) (T, error)) error {
	v, err := dec(decoder{}, data)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
