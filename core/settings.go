package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// SetWorkPostcode stores the work postcode and, when a geocoder is given,
// its coordinates. An empty postcode clears both.
func SetWorkPostcode(ctx context.Context, cfg *contract.Config, store contract.RecordStore, geocoder contract.Geocoder, postcode string) (schema.Settings, error) {
	settings, err := loadSettings(store, cfg.Catalog)
	if err != nil {
		return schema.Settings{}, err
	}
	settings.WorkPostcode = strings.TrimSpace(postcode)
	settings.WorkCoordinates = nil
	if settings.WorkPostcode != "" && geocoder != nil {
		coords, err := geocoder.Lookup(ctx, settings.WorkPostcode)
		if err != nil {
			return schema.Settings{}, fmt.Errorf("cannot locate work postcode %s: %w", settings.WorkPostcode, err)
		}
		settings.WorkCoordinates = &coords
	}
	if err := store.SaveSettings(settings); err != nil {
		return schema.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// SetTheme stores the display theme.
func SetTheme(cfg *contract.Config, store contract.RecordStore, theme string) (schema.Settings, error) {
	t := schema.Theme(strings.ToLower(strings.TrimSpace(theme)))
	if _, ok := schema.ValidThemes[t]; !ok {
		return schema.Settings{}, fmt.Errorf("invalid theme '%s'. must be light, dark, system", theme)
	}
	settings, err := loadSettings(store, cfg.Catalog)
	if err != nil {
		return schema.Settings{}, err
	}
	settings.Theme = t
	if err := store.SaveSettings(settings); err != nil {
		return schema.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// workCoordinates returns the coordinates used for distance in the detail
// view. A work postcode from the config takes precedence over the stored one
// and is only resolved when a geocoder is given.
func workCoordinates(ctx context.Context, cfg *contract.Config, settings schema.Settings, geocoder contract.Geocoder) *schema.Coordinates {
	if cfg.WorkPostcode == "" ||
		contract.NormalizePostcode(cfg.WorkPostcode) == contract.NormalizePostcode(settings.WorkPostcode) {
		return settings.WorkCoordinates
	}
	if geocoder == nil {
		return nil
	}
	coords, err := geocoder.Lookup(ctx, cfg.WorkPostcode)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cannot locate work postcode %s", cfg.WorkPostcode), err)
		return nil
	}
	return &coords
}

// ExecuteSettingsShow prints the stored settings.
func ExecuteSettingsShow(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	settings, err := loadSettings(mgr.GetRecordStore(), cfg.Catalog)
	if err != nil {
		return err
	}
	return writer.WriteSettings(settings, cfg)
}

// ExecuteSettingsWork stores the work postcode and prints the settings.
func ExecuteSettingsWork(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder, postcode string) error {
	if _, err := SetWorkPostcode(ctx, cfg, mgr.GetRecordStore(), geocoder, postcode); err != nil {
		return err
	}
	return ExecuteSettingsShow(ctx, cfg, mgr)
}

// ExecuteSettingsTheme stores the display theme and prints the settings.
func ExecuteSettingsTheme(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, theme string) error {
	if _, err := SetTheme(cfg, mgr.GetRecordStore(), theme); err != nil {
		return err
	}
	return ExecuteSettingsShow(ctx, cfg, mgr)
}
