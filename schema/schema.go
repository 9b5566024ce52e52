// Package schema has the models and constants shared by all parts of nestscore.
package schema

import "time"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Property is a candidate home being evaluated. Answers are keyed by question id
// and are never validated against the catalogue when written.
type Property struct {
	ID          int64        `json:"id,omitempty"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Postcode    string       `json:"postcode"`
	Price       int          `json:"price"`
	Agent       string       `json:"agent,omitempty"`
	ViewingDate string       `json:"viewingDate,omitempty"`
	ListingURL  string       `json:"listingUrl,omitempty"`
	Answers     Answers      `json:"answers"`
	Notes       string       `json:"notes"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property {
	clone := p
	clone.Answers = p.Answers.Clone()
	if p.Coordinates != nil {
		c := *p.Coordinates
		clone.Coordinates = &c
	}
	return clone
}

// SettingsID is the fixed key of the user settings record.
const SettingsID = "user-settings"

// Settings is the user-level record that owns the weight map.
type Settings struct {
	ID              string       `json:"id"`
	Weights         Weights      `json:"weights"`
	WorkPostcode    string       `json:"workPostcode,omitempty"`
	WorkCoordinates *Coordinates `json:"workCoordinates,omitempty"`
	Theme           Theme        `json:"theme"`
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	clone := s
	clone.Weights = s.Weights.Clone()
	if s.WorkCoordinates != nil {
		c := *s.WorkCoordinates
		clone.WorkCoordinates = &c
	}
	return clone
}
