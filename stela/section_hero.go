package stela

import "encoding/json"

// SectionHero shows a Hero in the section list.
type SectionHero struct {
	Hero Hero `json:"hero"`
}

func (*SectionHero) sectionKind() SectionKind { return SectionKindHero }

func decodeSectionHero(d decoder, raw json.RawMessage) (SectionHero, error) {
	f, err := d.record(raw)
	if err != nil {
		return SectionHero{}, err
	}
	s := SectionHero{Hero: required(f, "hero", decodeHero)}
	if f.err != nil {
		return SectionHero{}, f.err
	}
	return s, nil
}
