package stela

import "encoding/json"

// Hero is a large banner: images, a title, a description and some buttons.
type Hero struct {
	PrimaryImageLight *Image `json:"primary_image_light"`
	PrimaryImageDark  *Image `json:"primary_image_dark"`
	// PrimaryImageFallbackText is shown while the image loads or when it is missing.
	PrimaryImageFallbackText *string `json:"primary_image_fallback_text"`

	BackgroundImageLight *Image `json:"background_image_light"`
	BackgroundImageDark  *Image `json:"background_image_dark"`

	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Motions     []VisualMotion `json:"motions"`
}

func (h Hero) MarshalJSON() ([]byte, error) {
	type wire Hero
	w := wire(h)
	w.Motions = orEmpty(w.Motions)
	return json.Marshal(w)
}

func (h *Hero) UnmarshalJSON(data []byte) error {
	return unmarshalInto(h, data, decodeHero)
}

func decodeHero(d decoder, raw json.RawMessage) (Hero, error) {
	f, err := d.record(raw)
	if err != nil {
		return Hero{}, err
	}
	h := Hero{
		PrimaryImageLight:        optional(f, "primary_image_light", decodeImage),
		PrimaryImageDark:         optional(f, "primary_image_dark", decodeImage),
		PrimaryImageFallbackText: optional(f, "primary_image_fallback_text", decodeString),
		BackgroundImageLight:     optional(f, "background_image_light", decodeImage),
		BackgroundImageDark:      optional(f, "background_image_dark", decodeImage),
		Title:                    optional(f, "title", decodeString),
		Description:              optional(f, "description", decodeString),
		Motions:                  required(f, "motions", sliceOf(decodeVisualMotion)),
	}
	if f.err != nil {
		return Hero{}, f.err
	}
	return h, nil
}
