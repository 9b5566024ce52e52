package core

import (
	"context"
	"testing"

	"github.com/huangsam/nestscore/internal/share"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShareData(t *testing.T) {
	cfg := testConfig(t)
	store, _ := newTestManager()

	data, err := BuildShareData(cfg, store, schema.ShareSettings, 0)
	require.NoError(t, err)
	require.NotNil(t, data.Settings)
	assert.Equal(t, cfg.Catalog.DefaultWeights(), data.Settings.Weights)

	_, err = BuildShareData(cfg, store, schema.ShareProperties, 0)
	assert.ErrorContains(t, err, "no properties to share")

	_, err = BuildShareData(cfg, store, schema.ShareType("everything"), 0)
	assert.ErrorContains(t, err, "invalid share type")

	id := mustCreate(t, store, schema.Property{Name: "Oak Road", Answers: strongAnswers})
	data, err = BuildShareData(cfg, store, schema.ShareProperty, id)
	require.NoError(t, err)
	require.NotNil(t, data.Property)
	assert.Zero(t, data.Property.ID, "ids are not shared")
	assert.Equal(t, "Oak Road", data.Property.Name)
}

func TestShareImportProperties(t *testing.T) {
	cfg := testConfig(t)
	source, _ := newTestManager()
	mustCreate(t, source, schema.Property{Name: "Oak Road", Postcode: "LS1 1AA", Answers: strongAnswers, Coordinates: &leeds})
	mustCreate(t, source, schema.Property{Name: "Elm Street", Answers: weakAnswers})

	data, err := BuildShareData(cfg, source, schema.ShareProperties, 0)
	require.NoError(t, err)
	code, err := share.Encode(data)
	require.NoError(t, err)

	target, _ := newTestManager()
	mustCreate(t, target, schema.Property{Name: "Existing"})

	result, err := ImportShareCode(context.Background(), cfg, target, code)
	require.NoError(t, err)
	assert.False(t, result.SettingsApplied)
	require.Len(t, result.PropertyIDs, 2)

	imported, err := target.GetProperty(result.PropertyIDs[0])
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), imported.ID, "imports get fresh ids")
	assert.Equal(t, "Elm Street", imported.Name)
	assert.Equal(t, weakAnswers, imported.Answers)

	imported, err = target.GetProperty(result.PropertyIDs[1])
	require.NoError(t, err)
	require.NotNil(t, imported.Coordinates)
	assert.Equal(t, leeds, *imported.Coordinates)

	all, err := target.ListProperties()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestShareImportSettings(t *testing.T) {
	cfg := testConfig(t)
	store, _ := newTestManager()
	require.NoError(t, store.SaveSettings(schema.Settings{
		Weights:         schema.Weights{"location": 20, "safety": 10},
		WorkPostcode:    "LS1 1AA",
		WorkCoordinates: &leeds,
		Theme:           schema.LightTheme,
	}))

	code, err := share.Encode(schema.ShareData{
		Type:    schema.ShareSettings,
		Version: schema.ShareVersion,
		Settings: &schema.SharedSettings{
			Weights:      schema.Weights{"location": 40, "garden": 10, "energy": -3},
			WorkPostcode: "M1 1AA",
		},
	})
	require.NoError(t, err)

	result, err := ImportShareCode(context.Background(), cfg, store, code)
	require.NoError(t, err)
	assert.True(t, result.SettingsApplied)
	assert.ElementsMatch(t, []string{"garden", "energy"}, result.IgnoredWeights)

	stored, _, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, schema.Weights{"location": 40, "safety": 10}, stored.Weights)
	assert.Equal(t, "M1 1AA", stored.WorkPostcode)
	assert.Nil(t, stored.WorkCoordinates, "a new work postcode drops old coordinates")
	assert.Equal(t, schema.LightTheme, stored.Theme)
}

func TestShareImportInvalidCode(t *testing.T) {
	cfg := testConfig(t)
	store, _ := newTestManager()

	_, err := ImportShareCode(context.Background(), cfg, store, "not-a-code")
	assert.ErrorIs(t, err, share.ErrInvalidCode)
}
