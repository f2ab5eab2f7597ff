package stela

import (
	"encoding/json"
	"fmt"
)

// SocialData fills the page's link-preview meta tags.
//
// Revision 1 of the contract carried these as free-form tag pairs (see
// LegacySocialData). The two shapes are not interchangeable: a legacy payload
// decodes here as an empty record, and a current payload does not decode as
// LegacySocialData at all.
type SocialData struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Image       *Image          `json:"image"`
	URL         *string         `json:"url"`
	CardType    *SocialCardType `json:"card_type"`
}

func (s *SocialData) UnmarshalJSON(data []byte) error {
	return unmarshalInto(s, data, decodeSocialData)
}

func decodeSocialData(d decoder, raw json.RawMessage) (SocialData, error) {
	f, err := d.record(raw)
	if err != nil {
		return SocialData{}, err
	}
	s := SocialData{
		Title:       optional(f, "title", decodeString),
		Description: optional(f, "description", decodeString),
		Image:       optional(f, "image", decodeImage),
		URL:         optional(f, "url", decodeString),
		CardType:    optional(f, "card_type", decodeSocialCardType),
	}
	if f.err != nil {
		return SocialData{}, f.err
	}
	return s, nil
}

// SocialCardType is the twitter:card style.
type SocialCardType uint8

const (
	SocialCardTypeUnknown SocialCardType = iota
	SocialCardTypeSummary
	SocialCardTypeSummaryLargeImage
)

var socialCardTypeNames = []string{unknownTag, "Summary", "SummaryLargeImage"}

func (c SocialCardType) String() string { return enumName(c, socialCardTypeNames) }

func (c SocialCardType) MarshalJSON() ([]byte, error) { return marshalEnum(c, socialCardTypeNames) }

func (c *SocialCardType) UnmarshalJSON(data []byte) error {
	return unmarshalInto(c, data, decodeSocialCardType)
}

func decodeSocialCardType(d decoder, raw json.RawMessage) (SocialCardType, error) {
	return decodeEnum[SocialCardType](d, raw, socialCardTypeNames)
}

// LegacySocialData is the revision 1 meta tag payload: ordered key/value pairs
// such as ("og:title", "a/Hejmo").
type LegacySocialData struct {
	Tags []SocialTag `json:"tags"`
}

func (s LegacySocialData) MarshalJSON() ([]byte, error) {
	type wire LegacySocialData
	w := wire(s)
	w.Tags = orEmpty(w.Tags)
	return json.Marshal(w)
}

func (s *LegacySocialData) UnmarshalJSON(data []byte) error {
	return unmarshalInto(s, data, decodeLegacySocialData)
}

func decodeLegacySocialData(d decoder, raw json.RawMessage) (LegacySocialData, error) {
	f, err := d.record(raw)
	if err != nil {
		return LegacySocialData{}, err
	}
	s := LegacySocialData{Tags: required(f, "tags", sliceOf(decodeSocialTag))}
	if f.err != nil {
		return LegacySocialData{}, f.err
	}
	return s, nil
}

// SocialTag is one meta tag. On the wire it is a two-element array.
type SocialTag struct {
	Key   string
	Value string
}

func (t SocialTag) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{t.Key, t.Value})
}

func (t *SocialTag) UnmarshalJSON(data []byte) error {
	return unmarshalInto(t, data, decodeSocialTag)
}

func decodeSocialTag(d decoder, raw json.RawMessage) (SocialTag, error) {
	items, err := d.array(raw)
	if err != nil {
		return SocialTag{}, err
	}
	if len(items) != 2 {
		return SocialTag{}, d.fail(fmt.Errorf("%w: expected a key/value pair, found %d elements", ErrInvalidType, len(items)))
	}
	key, err := decodeString(d.index(0), items[0])
	if err != nil {
		return SocialTag{}, err
	}
	value, err := decodeString(d.index(1), items[1])
	if err != nil {
		return SocialTag{}, err
	}
	return SocialTag{Key: key, Value: value}, nil
}
