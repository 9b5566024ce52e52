package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// ParseCoordinates parses "lat,lng" in decimal degrees.
func ParseCoordinates(s string) (schema.Coordinates, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return schema.Coordinates{}, fmt.Errorf("invalid coordinates '%s', expected 'lat,lng'", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return schema.Coordinates{}, fmt.Errorf("invalid latitude '%s'", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || lng < -180 || lng > 180 {
		return schema.Coordinates{}, fmt.Errorf("invalid longitude '%s'", lngStr)
	}
	return schema.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// resolvePoint turns a coordinate pair or a postcode into coordinates.
func resolvePoint(ctx context.Context, geocoder contract.Geocoder, point string) (schema.Coordinates, error) {
	if c, err := ParseCoordinates(point); err == nil {
		return c, nil
	}
	if geocoder == nil {
		return schema.Coordinates{}, fmt.Errorf("'%s' is not a lat,lng pair and geocoding is disabled", point)
	}
	return geocoder.Lookup(ctx, point)
}

// Distance returns the great-circle distance between two points, each given
// as "lat,lng" or a postcode.
func Distance(ctx context.Context, geocoder contract.Geocoder, from, to string) (float64, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return 0, errors.New("both points are required")
	}
	a, err := resolvePoint(ctx, geocoder, from)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve %s: %w", from, err)
	}
	b, err := resolvePoint(ctx, geocoder, to)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve %s: %w", to, err)
	}
	return algo.GreatCircleDistanceKm(a, b), nil
}

// ExecuteDistance prints the formatted distance between two points.
func ExecuteDistance(ctx context.Context, cfg *contract.Config, geocoder contract.Geocoder, from, to string) error {
	km, err := Distance(ctx, geocoder, from, to)
	if err != nil {
		return err
	}
	logf(ctx, cfg, "📏", "%s\n", algo.FormatDistance(km))
	return nil
}
