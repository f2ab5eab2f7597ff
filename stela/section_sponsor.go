package stela

import "encoding/json"

// SectionSponsor is an ad.
type SectionSponsor struct {
	SponsorText string   `json:"sponsor_text"` // the word "Sponsor", localised
	Name        string   `json:"name"`
	Text        string   `json:"text"`
	Motions     []Motion `json:"motions"` // call to action
}

func (*SectionSponsor) sectionKind() SectionKind { return SectionKindSponsor }

func (s SectionSponsor) MarshalJSON() ([]byte, error) {
	type wire SectionSponsor
	w := wire(s)
	w.Motions = orEmpty(w.Motions)
	return json.Marshal(w)
}

func decodeSectionSponsor(d decoder, raw json.RawMessage) (SectionSponsor, error) {
	f, err := d.record(raw)
	if err != nil {
		return SectionSponsor{}, err
	}
	s := SectionSponsor{
		SponsorText: required(f, "sponsor_text", decodeString),
		Name:        required(f, "name", decodeString),
		Text:        required(f, "text", decodeString),
		Motions:     required(f, "motions", sliceOf(decodeMotion)),
	}
	if f.err != nil {
		return SectionSponsor{}, f.err
	}
	return s, nil
}
