package stela

import "encoding/json"

// Navbar is the data and buttons for the top and side navigation bars.
type Navbar struct {
	LeftSideMotion        Motion         `json:"left_side_motion"`
	LeftSideIconImage     Image          `json:"left_side_icon_image"`
	LeftSideSecondaryText *string        `json:"left_side_secondary_text"` // dim text next to the icon
	SearchMotion          *Motion        `json:"search_motion"`
	SearchText            *string        `json:"search_text"`
	RightSideMotions      []VisualMotion `json:"right_side_motions"`
	SideMotions           []VisualMotion `json:"side_motions"`
}

func (n Navbar) MarshalJSON() ([]byte, error) {
	type wire Navbar
	w := wire(n)
	w.RightSideMotions = orEmpty(w.RightSideMotions)
	w.SideMotions = orEmpty(w.SideMotions)
	return json.Marshal(w)
}

func (n *Navbar) UnmarshalJSON(data []byte) error {
	return unmarshalInto(n, data, decodeNavbar)
}

func decodeNavbar(d decoder, raw json.RawMessage) (Navbar, error) {
	f, err := d.record(raw)
	if err != nil {
		return Navbar{}, err
	}
	n := Navbar{
		LeftSideMotion:        required(f, "left_side_motion", decodeMotion),
		LeftSideIconImage:     required(f, "left_side_icon_image", decodeImage),
		LeftSideSecondaryText: optional(f, "left_side_secondary_text", decodeString),
		SearchMotion:          optional(f, "search_motion", decodeMotion),
		SearchText:            optional(f, "search_text", decodeString),
		RightSideMotions:      required(f, "right_side_motions", sliceOf(decodeVisualMotion)),
		SideMotions:           required(f, "side_motions", sliceOf(decodeVisualMotion)),
	}
	if f.err != nil {
		return Navbar{}, f.err
	}
	return n, nil
}
