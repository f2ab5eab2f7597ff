package stela

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Image is an image storage id plus the dimensions known at upload time.
// Aspect should equal Width / Height; the producer keeps that true, not the codec.
type Image struct {
	Aspect *float32 `json:"aspect"`
	Width  *float32 `json:"width"`
	Height *float32 `json:"height"`
	// ID is the Cloudflare image storage id. Usually a UUID, not always.
	ID string `json:"id"`
}

// UUID parses ID as a UUID. ok is false for ids in any other format.
func (i Image) UUID() (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(i.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (i *Image) UnmarshalJSON(data []byte) error {
	return unmarshalInto(i, data, decodeImage)
}

func decodeImage(d decoder, raw json.RawMessage) (Image, error) {
	f, err := d.record(raw)
	if err != nil {
		return Image{}, err
	}
	img := Image{
		Aspect: optional(f, "aspect", decodeFloat32),
		Width:  optional(f, "width", decodeFloat32),
		Height: optional(f, "height", decodeFloat32),
		ID:     required(f, "id", decodeString),
	}
	if f.err != nil {
		return Image{}, f.err
	}
	return img, nil
}
