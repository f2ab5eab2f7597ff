package stela

import "encoding/json"

// VisualSection is a section plus generic display info.
type VisualSection struct {
	Title    *string `json:"title"`
	Bordered *bool   `json:"bordered"`
	// Section must be present. A value that cannot be decoded falls back to
	// Unknown.
	Section Section `json:"section"`
}

func (v *VisualSection) UnmarshalJSON(data []byte) error {
	return unmarshalInto(v, data, decodeVisualSection)
}

func decodeVisualSection(d decoder, raw json.RawMessage) (VisualSection, error) {
	f, err := d.record(raw)
	if err != nil {
		return VisualSection{}, err
	}
	v := VisualSection{
		Title:    optional(f, "title", decodeString),
		Bordered: optional(f, "bordered", decodeBool),
		Section:  defaultedPresent(f, "section", decodeSection),
	}
	if f.err != nil {
		return VisualSection{}, f.err
	}
	return v, nil
}

// SectionKind is the wire tag of a Section variant.
type SectionKind string

const (
	SectionKindUnknown SectionKind = unknownTag
	SectionKindForm    SectionKind = "Form"
	SectionKindHero    SectionKind = "Hero"
	SectionKindPost    SectionKind = "Post"
	SectionKindSponsor SectionKind = "Sponsor"
	SectionKindTiles   SectionKind = "Tiles"
)

// SectionValue is implemented by *SectionForm, *SectionHero, *SectionPost,
// *SectionSponsor and *SectionTiles.
type SectionValue interface {
	sectionKind() SectionKind
}

// Section is a blob of UI: a post, a shelf of tiles, a form, and so on. New
// kinds appear over time; a nil Value is one this package does not know.
type Section struct {
	Value SectionValue
}

func (s Section) Kind() SectionKind {
	if s.Value == nil {
		return SectionKindUnknown
	}
	return s.Value.sectionKind()
}

func (s Section) MarshalJSON() ([]byte, error) {
	if s.Value == nil {
		return unknownJSON(), nil
	}
	return encodeVariant(string(s.Value.sectionKind()), s.Value)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	return unmarshalInto(s, data, decodeSection)
}

func sectionVariant(tag string) func(decoder, json.RawMessage) (SectionValue, error) {
	switch SectionKind(tag) {
	case SectionKindForm:
		return as[SectionValue](decodeSectionForm)
	case SectionKindHero:
		return as[SectionValue](decodeSectionHero)
	case SectionKindPost:
		return as[SectionValue](decodeSectionPost)
	case SectionKindSponsor:
		return as[SectionValue](decodeSectionSponsor)
	case SectionKindTiles:
		return as[SectionValue](decodeSectionTiles)
	}
	return nil
}

func decodeSection(d decoder, raw json.RawMessage) (Section, error) {
	v, err := decodeUnion(d, raw, sectionVariant)
	if err != nil {
		return Section{}, err
	}
	return Section{Value: v}, nil
}
