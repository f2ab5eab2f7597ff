package stela

import "encoding/json"

// SectionTiles is a list of clickable tiles.
type SectionTiles struct {
	Tiles  []Tile      `json:"tiles"`
	Layout TilesLayout `json:"layout"`
}

func (*SectionTiles) sectionKind() SectionKind { return SectionKindTiles }

func (s SectionTiles) MarshalJSON() ([]byte, error) {
	type wire SectionTiles
	w := wire(s)
	w.Tiles = orEmpty(w.Tiles)
	return json.Marshal(w)
}

func decodeSectionTiles(d decoder, raw json.RawMessage) (SectionTiles, error) {
	f, err := d.record(raw)
	if err != nil {
		return SectionTiles{}, err
	}
	s := SectionTiles{
		Tiles:  required(f, "tiles", sliceOf(decodeTile)),
		Layout: required(f, "layout", decodeTilesLayout),
	}
	if f.err != nil {
		return SectionTiles{}, f.err
	}
	return s, nil
}

// Tile is one clickable tile of a SectionTiles.
type Tile struct {
	Header    *string `json:"header"`
	Subheader *string `json:"subheader"`
	Motion    *Motion `json:"motion"`
	// Image is used for both the thumbnail and the background.
	Image *Image `json:"image"`
	// BodyText replaces the thumbnail with text.
	BodyText *string `json:"body_text"`
}

func (t *Tile) UnmarshalJSON(data []byte) error {
	return unmarshalInto(t, data, decodeTile)
}

func decodeTile(d decoder, raw json.RawMessage) (Tile, error) {
	f, err := d.record(raw)
	if err != nil {
		return Tile{}, err
	}
	t := Tile{
		Header:    optional(f, "header", decodeString),
		Subheader: optional(f, "subheader", decodeString),
		Motion:    optional(f, "motion", decodeMotion),
		Image:     optional(f, "image", decodeImage),
		BodyText:  optional(f, "body_text", decodeString),
	}
	if f.err != nil {
		return Tile{}, f.err
	}
	return t, nil
}

// TilesLayout is how tiles are arranged.
type TilesLayout uint8

const (
	TilesLayoutUnknown TilesLayout = iota
	// TilesLayoutHorizontalList is a scrolling shelf.
	TilesLayoutHorizontalList
	TilesLayoutVerticalList
	TilesLayoutGrid
)

var tilesLayoutNames = []string{unknownTag, "HorizontalList", "VerticalList", "Grid"}

func (l TilesLayout) String() string { return enumName(l, tilesLayoutNames) }

func (l TilesLayout) MarshalJSON() ([]byte, error) { return marshalEnum(l, tilesLayoutNames) }

func (l *TilesLayout) UnmarshalJSON(data []byte) error {
	return unmarshalInto(l, data, decodeTilesLayout)
}

func decodeTilesLayout(d decoder, raw json.RawMessage) (TilesLayout, error) {
	return decodeEnum[TilesLayout](d, raw, tilesLayoutNames)
}
