package schema

// ShareType identifies the payload carried by a share code.
type ShareType string

// All share payload types supported.
const (
	ShareSettings   ShareType = "settings"
	ShareProperty   ShareType = "property"
	ShareProperties ShareType = "properties"
)

// ShareVersion is the current share payload version.
const ShareVersion = 1

// SharedSettings is the settings subset carried in a share code.
type SharedSettings struct {
	Weights      Weights `json:"weights"`
	WorkPostcode string  `json:"workPostcode,omitempty"`
}

// ShareData is the envelope encoded into share codes.
// Exactly one of Settings, Property or Properties is set, matching Type.
type ShareData struct {
	Type       ShareType       `json:"type"`
	Version    int             `json:"version"`
	Settings   *SharedSettings `json:"settings,omitempty"`
	Property   *Property       `json:"property,omitempty"`
	Properties []Property      `json:"properties,omitempty"`
}
