package core

import (
	"context"
	"testing"

	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		input    string
		expected schema.Coordinates
		wantErr  string
	}{
		{"53.796,-1.547", schema.Coordinates{Latitude: 53.796, Longitude: -1.547}, ""},
		{" 51.5 , 0 ", schema.Coordinates{Latitude: 51.5}, ""},
		{"LS1 1AA", schema.Coordinates{}, "expected 'lat,lng'"},
		{"91,0", schema.Coordinates{}, "invalid latitude"},
		{"0,181", schema.Coordinates{}, "invalid longitude"},
		{"north,0", schema.Coordinates{}, "invalid latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCoordinates(tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestDistance(t *testing.T) {
	ctx := context.Background()

	km, err := Distance(ctx, nil, "51.5074,-0.1278", "48.8566,2.3522")
	require.NoError(t, err)
	assert.InDelta(t, 343.5, km, 1.0)

	km, err = Distance(ctx, testGeocoder(), "LS1 1AA", "M1 1AA")
	require.NoError(t, err)
	assert.InDelta(t, 58, km, 2.0)

	_, err = Distance(ctx, nil, "LS1 1AA", "51.5,0")
	assert.ErrorContains(t, err, "geocoding is disabled")

	_, err = Distance(ctx, testGeocoder(), "ZZ9 9ZZ", "51.5,0")
	assert.ErrorContains(t, err, "cannot resolve ZZ9 9ZZ")

	_, err = Distance(ctx, nil, "", "51.5,0")
	assert.ErrorContains(t, err, "both points are required")
}
