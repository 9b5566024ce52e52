package core

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/share"
	"github.com/huangsam/nestscore/schema"
)

// BuildShareData collects the payload for a share code. id is only used for
// single-property payloads.
func BuildShareData(cfg *contract.Config, store contract.RecordStore, kind schema.ShareType, id int64) (schema.ShareData, error) {
	switch kind {
	case schema.ShareSettings:
		settings, err := loadSettings(store, cfg.Catalog)
		if err != nil {
			return schema.ShareData{}, err
		}
		return share.ForSettings(settings), nil
	case schema.ShareProperty:
		p, err := store.GetProperty(id)
		if err != nil {
			return schema.ShareData{}, err
		}
		return share.ForProperty(p), nil
	case schema.ShareProperties:
		props, err := store.ListProperties()
		if err != nil {
			return schema.ShareData{}, fmt.Errorf("failed to list properties: %w", err)
		}
		if len(props) == 0 {
			return schema.ShareData{}, errors.New("no properties to share")
		}
		return share.ForProperties(props), nil
	default:
		return schema.ShareData{}, fmt.Errorf("invalid share type '%s'. must be settings, property, properties", kind)
	}
}

// ExecuteShareEncode prints a share code for the requested payload.
func ExecuteShareEncode(_ context.Context, cfg *contract.Config, mgr contract.StoreManager, kind schema.ShareType, id int64) error {
	data, err := BuildShareData(cfg, mgr.GetRecordStore(), kind, id)
	if err != nil {
		return err
	}
	code, err := share.Encode(data)
	if err != nil {
		return err
	}
	if share.IsTooLargeForQR(code) {
		fmt.Fprintf(os.Stderr, "Note: code is %d characters, too long for a QR code (max %d)\n", len(code), share.MaxQRLength)
	}
	return writer.WriteShareCode(code, cfg)
}

// DecodeShareCode decodes a share code, warning about payloads from a newer version.
func DecodeShareCode(code string) (schema.ShareData, error) {
	data, err := share.Decode(code)
	if err != nil {
		return schema.ShareData{}, err
	}
	if data.Version > schema.ShareVersion {
		contract.LogWarn("Share code was made by a newer version",
			fmt.Errorf("payload version %d, supported version %d", data.Version, schema.ShareVersion))
	}
	return data, nil
}

// ExecuteShareDecode prints the payload of a share code as JSON.
func ExecuteShareDecode(_ context.Context, cfg *contract.Config, code string) error {
	data, err := DecodeShareCode(code)
	if err != nil {
		return err
	}
	return writer.WriteShareData(data, cfg)
}

// ImportResult summarizes what a share import changed.
type ImportResult struct {
	PropertyIDs     []int64
	SettingsApplied bool
	IgnoredWeights  []string
}

// ImportShareCode applies a decoded payload. Properties are created as new
// records. Settings weights for unknown categories are ignored.
func ImportShareCode(ctx context.Context, cfg *contract.Config, store contract.RecordStore, code string) (ImportResult, error) {
	data, err := DecodeShareCode(code)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	if data.Type == schema.ShareSettings {
		settings, err := loadSettings(store, cfg.Catalog)
		if err != nil {
			return ImportResult{}, err
		}
		settings.Weights = settings.Weights.Clone()
		for id, w := range data.Settings.Weights {
			if _, ok := cfg.Catalog.Category(id); !ok || w < 0 {
				result.IgnoredWeights = append(result.IgnoredWeights, id)
				continue
			}
			settings.Weights[id] = w
		}
		if data.Settings.WorkPostcode != settings.WorkPostcode {
			settings.WorkPostcode = data.Settings.WorkPostcode
			settings.WorkCoordinates = nil
		}
		if err := store.SaveSettings(settings); err != nil {
			return ImportResult{}, fmt.Errorf("failed to save settings: %w", err)
		}
		result.SettingsApplied = true
		return result, nil
	}

	for _, p := range share.ImportedProperties(data) {
		id, err := AddProperty(ctx, store, nil, p)
		if err != nil {
			return result, fmt.Errorf("failed to import property %q: %w", p.Name, err)
		}
		result.PropertyIDs = append(result.PropertyIDs, id)
	}
	return result, nil
}

// ExecuteShareImport imports a share code and prints a summary.
func ExecuteShareImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, code string) error {
	result, err := ImportShareCode(ctx, cfg, mgr.GetRecordStore(), code)
	if err != nil {
		return err
	}
	if len(result.IgnoredWeights) > 0 {
		contract.LogWarn("Ignored weights", fmt.Errorf("unknown categories: %v", result.IgnoredWeights))
	}
	if result.SettingsApplied {
		logf(ctx, cfg, "⚙️ ", "Imported settings\n")
		return nil
	}
	logf(ctx, cfg, "📥", "Imported %d properties %v\n", len(result.PropertyIDs), result.PropertyIDs)
	return nil
}
