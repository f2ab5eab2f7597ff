package stela

import "encoding/json"

// Modal is a section popped up over the page content.
type Modal struct {
	Section Section `json:"section"`
}

func (m *Modal) UnmarshalJSON(data []byte) error {
	return unmarshalInto(m, data, decodeModal)
}

func decodeModal(d decoder, raw json.RawMessage) (Modal, error) {
	f, err := d.record(raw)
	if err != nil {
		return Modal{}, err
	}
	m := Modal{Section: required(f, "section", decodeSection)}
	if f.err != nil {
		return Modal{}, f.err
	}
	return m, nil
}
