package stela

import (
	"encoding/json"
	"errors"
)

// DecodePage decodes a page payload leniently. It fails only when data is not
// a JSON object; every problem below the page's own fields is absorbed.
func DecodePage(data []byte) (*Page, error) {
	page, _, err := DecodePageReport(data)
	return page, err
}

// DecodePageReport is DecodePage plus a report of everything leniency absorbed.
func DecodePageReport(data []byte) (*Page, *Report, error) {
	report := &Report{}
	page, err := decodeRoot(data, report, decodePage)
	if err != nil {
		return nil, nil, err
	}
	return &page, report, nil
}

// EncodePage encodes a page in the current wire shape.
func EncodePage(page *Page) ([]byte, error) {
	if page == nil {
		return nil, errors.New("stela: encode nil page")
	}
	return json.Marshal(page)
}

// DecodeNavbar decodes a navbar payload. Navbar fields carry no default
// policy, so a missing required field anywhere fails the decode.
func DecodeNavbar(data []byte) (*Navbar, error) {
	navbar, err := decodeRoot(data, nil, decodeNavbar)
	if err != nil {
		return nil, err
	}
	return &navbar, nil
}

// EncodeNavbar encodes a navbar in the current wire shape.
func EncodeNavbar(navbar *Navbar) ([]byte, error) {
	if navbar == nil {
		return nil, errors.New("stela: encode nil navbar")
	}
	return json.Marshal(navbar)
}

// DecodeLegacySocialData decodes a revision 1 social payload ({"tags": [[k, v], ...]}).
func DecodeLegacySocialData(data []byte) (*LegacySocialData, error) {
	social, err := decodeRoot(data, nil, decodeLegacySocialData)
	if err != nil {
		return nil, err
	}
	return &social, nil
}

func decodeRoot[T any](data []byte, report *Report, dec func(decoder, json.RawMessage) (T, error)) (T, error) {
	var zero T
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return zero, &StructuralError{Err: err}
	}
	if kind := kindOf(raw); kind != kindObject {
		return zero, &StructuralError{Err: typeError(kindObject, raw)}
	}
	return dec(decoder{report: report}, raw)
}
