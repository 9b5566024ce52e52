// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProperties prints ranked properties using the configured output format.
// total is the number of properties before the result limit was applied.
func (ow *OutWriter) WriteProperties(props []schema.ScoredProperty, total int, cfg *contract.Config, duration time.Duration) error {
	return PrintProperties(props, total, cfg, duration)
}

// WriteDetail prints the detail view of one property.
func (ow *OutWriter) WriteDetail(detail schema.PropertyDetail, cfg *contract.Config) error {
	return PrintDetail(detail, cfg)
}

// WriteComparison prints a comparison matrix.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config) error {
	return PrintComparison(result, cfg)
}

// WriteCatalog prints the question catalogue.
func (ow *OutWriter) WriteCatalog(rows []schema.CatalogSummary, cfg *contract.Config) error {
	return PrintCatalog(rows, cfg)
}

// WriteWeights prints the effective weights with their sources.
func (ow *OutWriter) WriteWeights(weights []schema.EffectiveWeight, cfg *contract.Config) error {
	return PrintWeights(weights, cfg)
}

// WriteSettings prints the stored user settings.
func (ow *OutWriter) WriteSettings(s schema.Settings, cfg *contract.Config) error {
	return PrintSettings(s, cfg)
}

// WriteShareCode prints a share code.
func (ow *OutWriter) WriteShareCode(code string, cfg *contract.Config) error {
	return PrintShareCode(code, cfg)
}

// WriteShareData prints a decoded share payload.
func (ow *OutWriter) WriteShareData(data schema.ShareData, cfg *contract.Config) error {
	return PrintShareData(data, cfg)
}

// WriteExport writes every scored property to the output file as csv, json or parquet.
func (ow *OutWriter) WriteExport(props []schema.ScoredProperty, c *catalog.Catalog, cfg *contract.Config) error {
	return PrintExport(props, c, cfg)
}
