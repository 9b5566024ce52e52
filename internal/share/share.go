// Package share encodes settings and properties into compact URL-safe codes.
//
// A code is the JSON payload compressed with zlib and written as base64 with
// the URL-safe alphabet and no padding.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/nestscore/schema"
	"github.com/klauspost/compress/zlib"
)

// MaxQRLength is the longest code that still fits comfortably in a QR image.
const MaxQRLength = 2000

// maxDecodedSize bounds decompression of untrusted codes.
const maxDecodedSize = 8 << 20

// ErrInvalidCode is returned for codes that cannot be decoded.
var ErrInvalidCode = errors.New("invalid share code")

// Encode serializes, compresses and base64url-encodes the payload.
func Encode(data schema.ShareData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode share payload: %w", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		_ = zw.Close()
		return "", fmt.Errorf("failed to compress share payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress share payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. The returned version may be newer than
// schema.ShareVersion; callers decide whether to warn.
func Decode(code string) (schema.ShareData, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return schema.ShareData{}, ErrInvalidCode
	}

	// Codes copied with padding are accepted too
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(code, "="))
	if err != nil {
		return schema.ShareData{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return schema.ShareData{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	defer func() { _ = zr.Close() }()

	raw, err := io.ReadAll(io.LimitReader(zr, maxDecodedSize+1))
	if err != nil {
		return schema.ShareData{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if len(raw) > maxDecodedSize {
		return schema.ShareData{}, fmt.Errorf("%w: payload too large", ErrInvalidCode)
	}

	var data schema.ShareData
	if err := json.Unmarshal(raw, &data); err != nil {
		return schema.ShareData{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if err := validate(data); err != nil {
		return schema.ShareData{}, err
	}
	return data, nil
}

// validate checks that the payload matches its declared type.
func validate(data schema.ShareData) error {
	switch data.Type {
	case schema.ShareSettings:
		if data.Settings == nil {
			return fmt.Errorf("%w: settings payload is empty", ErrInvalidCode)
		}
	case schema.ShareProperty:
		if data.Property == nil {
			return fmt.Errorf("%w: property payload is empty", ErrInvalidCode)
		}
	case schema.ShareProperties:
		if data.Properties == nil {
			return fmt.Errorf("%w: properties payload is empty", ErrInvalidCode)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCode, data.Type)
	}
	if data.Version < 1 {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidCode, data.Version)
	}
	return nil
}

// IsTooLargeForQR reports whether a code exceeds MaxQRLength.
func IsTooLargeForQR(code string) bool {
	return len(code) > MaxQRLength
}

// stripForShare removes the local id from a property.
func stripForShare(p schema.Property) schema.Property {
	p = p.Clone()
	p.ID = 0
	return p
}

// ForSettings builds a settings payload.
func ForSettings(s schema.Settings) schema.ShareData {
	return schema.ShareData{
		Type:    schema.ShareSettings,
		Version: schema.ShareVersion,
		Settings: &schema.SharedSettings{
			Weights:      s.Weights.Clone(),
			WorkPostcode: s.WorkPostcode,
		},
	}
}

// ForProperty builds a single property payload without its id.
func ForProperty(p schema.Property) schema.ShareData {
	stripped := stripForShare(p)
	return schema.ShareData{
		Type:     schema.ShareProperty,
		Version:  schema.ShareVersion,
		Property: &stripped,
	}
}

// ForProperties builds a multi-property payload without ids.
func ForProperties(props []schema.Property) schema.ShareData {
	stripped := make([]schema.Property, len(props))
	for i, p := range props {
		stripped[i] = stripForShare(p)
	}
	return schema.ShareData{
		Type:       schema.ShareProperties,
		Version:    schema.ShareVersion,
		Properties: stripped,
	}
}

// ImportedProperties returns the properties in a payload, ready to be created
// as new records with fresh ids and timestamps.
func ImportedProperties(data schema.ShareData) []schema.Property {
	var props []schema.Property
	switch data.Type {
	case schema.ShareProperty:
		if data.Property != nil {
			props = append(props, *data.Property)
		}
	case schema.ShareProperties:
		props = append(props, data.Properties...)
	}

	for i := range props {
		props[i] = props[i].Clone()
		props[i].ID = 0
		props[i].CreatedAt = time.Time{}
		props[i].UpdatedAt = time.Time{}
	}
	return props
}
