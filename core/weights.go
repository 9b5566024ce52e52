package core

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// defaultSettings returns the settings used when none are stored.
func defaultSettings(c *catalog.Catalog) schema.Settings {
	return schema.Settings{
		ID:      schema.SettingsID,
		Weights: c.DefaultWeights(),
		Theme:   schema.SystemTheme,
	}
}

// loadSettings returns the stored settings, or the catalogue defaults when
// nothing has been saved yet.
func loadSettings(store contract.RecordStore, c *catalog.Catalog) (schema.Settings, error) {
	s, found, err := store.GetSettings()
	if err != nil {
		return schema.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		return defaultSettings(c), nil
	}
	if s.Weights == nil {
		s.Weights = make(schema.Weights)
	}
	return s, nil
}

// ResolveWeights layers catalogue defaults, stored settings and overrides, in
// that order, and reports where each category's weight came from. Keys that
// are not catalogue categories are ignored.
func ResolveWeights(c *catalog.Catalog, settings schema.Weights, overrides schema.Weights) (schema.Weights, []schema.EffectiveWeight) {
	categories := c.Categories()
	weights := make(schema.Weights, len(categories))
	effective := make([]schema.EffectiveWeight, 0, len(categories))

	for _, cat := range categories {
		ew := schema.EffectiveWeight{
			CategoryID:    cat.ID,
			CategoryName:  cat.Name,
			DefaultWeight: cat.DefaultWeight,
			Weight:        cat.DefaultWeight,
			Source:        schema.DefaultWeightSource,
		}
		if w, ok := settings[cat.ID]; ok && w >= 0 && w != cat.DefaultWeight {
			ew.Weight, ew.Source = w, schema.SettingsWeightSource
		}
		if w, ok := overrides[cat.ID]; ok {
			ew.Weight, ew.Source = w, schema.OverrideWeightSource
		}
		weights[cat.ID] = ew.Weight
		effective = append(effective, ew)
	}
	return weights, effective
}

// effectiveWeights loads settings and resolves the weights used for scoring.
func effectiveWeights(cfg *contract.Config, store contract.RecordStore) (schema.Weights, []schema.EffectiveWeight, schema.Settings, error) {
	settings, err := loadSettings(store, cfg.Catalog)
	if err != nil {
		return nil, nil, schema.Settings{}, err
	}
	weights, effective := ResolveWeights(cfg.Catalog, settings.Weights, cfg.WeightOverrides)
	return weights, effective, settings, nil
}

// GetEffectiveWeights returns the weight of every category and its source.
func GetEffectiveWeights(cfg *contract.Config, mgr contract.StoreManager) ([]schema.EffectiveWeight, error) {
	_, effective, _, err := effectiveWeights(cfg, mgr.GetRecordStore())
	return effective, err
}

// ExecuteWeightsShow prints the effective weights and their sources.
func ExecuteWeightsShow(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	effective, err := GetEffectiveWeights(cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteWeights(effective, cfg)
}

// SetWeights validates and persists weights into the stored settings.
// Categories not named keep their stored value.
func SetWeights(cfg *contract.Config, store contract.RecordStore, updates schema.Weights) (schema.Settings, error) {
	if len(updates) == 0 {
		return schema.Settings{}, errors.New("no weights given, expected category=value pairs")
	}
	if err := contract.ValidateWeights(cfg.Catalog, updates); err != nil {
		return schema.Settings{}, err
	}
	settings, err := loadSettings(store, cfg.Catalog)
	if err != nil {
		return schema.Settings{}, err
	}
	settings.Weights = settings.Weights.Clone()
	maps.Copy(settings.Weights, updates)
	if err := store.SaveSettings(settings); err != nil {
		return schema.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// ExecuteWeightsSet persists the given weights and prints the result.
func ExecuteWeightsSet(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, updates schema.Weights) error {
	if _, err := SetWeights(cfg, mgr.GetRecordStore(), updates); err != nil {
		return err
	}
	return ExecuteWeightsShow(ctx, cfg, mgr)
}

// ExecuteWeightsReset restores the catalogue default weights, keeping the
// other settings fields.
func ExecuteWeightsReset(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store := mgr.GetRecordStore()
	settings, err := loadSettings(store, cfg.Catalog)
	if err != nil {
		return err
	}
	settings.Weights = cfg.Catalog.DefaultWeights()
	if err := store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return ExecuteWeightsShow(ctx, cfg, mgr)
}
