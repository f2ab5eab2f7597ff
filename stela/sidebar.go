package stela

import "encoding/json"

// Sidebar holds the mini sections shown beside the page content.
type Sidebar struct {
	Cards []SidebarCard `json:"cards"`
}

func (s Sidebar) MarshalJSON() ([]byte, error) {
	type wire Sidebar
	w := wire(s)
	w.Cards = orEmpty(w.Cards)
	return json.Marshal(w)
}

func (s *Sidebar) UnmarshalJSON(data []byte) error {
	return unmarshalInto(s, data, decodeSidebar)
}

func decodeSidebar(d decoder, raw json.RawMessage) (Sidebar, error) {
	f, err := d.record(raw)
	if err != nil {
		return Sidebar{}, err
	}
	s := Sidebar{Cards: required(f, "cards", sliceOf(decodeSidebarCard))}
	if f.err != nil {
		return Sidebar{}, f.err
	}
	return s, nil
}

type SidebarCard struct {
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Motions []VisualMotion `json:"motions"` // buttons under the body
}

func (c SidebarCard) MarshalJSON() ([]byte, error) {
	type wire SidebarCard
	w := wire(c)
	w.Motions = orEmpty(w.Motions)
	return json.Marshal(w)
}

func (c *SidebarCard) UnmarshalJSON(data []byte) error {
	return unmarshalInto(c, data, decodeSidebarCard)
}

func decodeSidebarCard(d decoder, raw json.RawMessage) (SidebarCard, error) {
	f, err := d.record(raw)
	if err != nil {
		return SidebarCard{}, err
	}
	c := SidebarCard{
		Title:   required(f, "title", decodeString),
		Body:    required(f, "body", decodeString),
		Motions: required(f, "motions", sliceOf(decodeVisualMotion)),
	}
	if f.err != nil {
		return SidebarCard{}, f.err
	}
	return c, nil
}
