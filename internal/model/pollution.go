package model

import (
	"bytes"
	"fmt"
)

// Decimal is a latitude/longitude value kept in its textual form. Coordinate
// bounds are enforced by pattern matching on the string representation, so
// the original text must survive decoding. JSON numbers and strings are both
// accepted.
type Decimal string

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		*d = Decimal(data[1 : len(data)-1])
		return nil
	}
	*d = Decimal(data)
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", string(d))), nil
}

// Pollution represents a pollution report in the database. Optional columns
// are pointers so an unset field round-trips as JSON null.
type Pollution struct {
	ID              int64    `json:"id"`
	Nom             string   `json:"nom"`
	Lieu            *string  `json:"lieu"`
	DateObservation *string  `json:"dateObservation"`
	TypePollution   *string  `json:"typePollution"`
	Description     *string  `json:"description"`
	Latitude        *Decimal `json:"latitude"`
	Longitude       *Decimal `json:"longitude"`
	ImageURL        *string  `json:"imageUrl"`
}

// PollutionRequest is the body of a create or partial-update request. Every
// field is a pointer so an absent field can be told apart from an empty one.
type PollutionRequest struct {
	Nom             *string  `json:"nom"`
	Lieu            *string  `json:"lieu"`
	DateObservation *string  `json:"dateObservation"`
	TypePollution   *string  `json:"typePollution"`
	Description     *string  `json:"description"`
	Latitude        *Decimal `json:"latitude"`
	Longitude       *Decimal `json:"longitude"`
	ImageURL        *string  `json:"imageUrl"`
}
