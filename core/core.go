// Package core has the command logic for scoring, ranking and comparing properties.
package core

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/outwriter"
	"github.com/huangsam/nestscore/schema"
)

// ExecutorFunc defines the function signature for commands that need no arguments.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// writer renders every command result.
var writer = outwriter.NewOutWriter()

// logf prints a progress or result line to stdout, unless headers are suppressed.
func logf(ctx context.Context, cfg *contract.Config, emoji, format string, args ...any) {
	if shouldSuppressHeader(ctx) {
		return
	}
	if cfg.UseEmojis {
		format = emoji + " " + format
	}
	fmt.Fprintf(os.Stdout, format, args...)
}

// ExecuteList scores every property and prints the ranked listing.
func ExecuteList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	ranked, total, err := GetPropertyResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteProperties(ranked, total, cfg, time.Since(start))
}

// GetPropertyDetail scores one property and builds its detail view.
func GetPropertyDetail(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder, id int64) (schema.PropertyDetail, error) {
	store := mgr.GetRecordStore()
	p, err := store.GetProperty(id)
	if err != nil {
		return schema.PropertyDetail{}, err
	}
	weights, _, settings, err := effectiveWeights(cfg, store)
	if err != nil {
		return schema.PropertyDetail{}, err
	}

	detail := NewPropertyDetailBuilder(cfg.Catalog, p, weights).
		CalculateScore().
		CalculateCompletion().
		CalculateDistance(workCoordinates(ctx, cfg, settings, geocoder)).
		Build()
	return detail, nil
}

// ExecuteShow prints the detail view of one property.
func ExecuteShow(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder, id int64) error {
	detail, err := GetPropertyDetail(ctx, cfg, mgr, geocoder, id)
	if err != nil {
		return err
	}
	return writer.WriteDetail(detail, cfg)
}

// GetComparisonResult loads, scores and compares the given properties in the
// order given.
func GetComparisonResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, ids []int64) (schema.ComparisonResult, error) {
	if err := validateCompareIDs(ids, contract.MaxCompareItems); err != nil {
		return schema.ComparisonResult{}, err
	}
	store := mgr.GetRecordStore()
	props := make([]schema.Property, 0, len(ids))
	for _, id := range ids {
		p, err := store.GetProperty(id)
		if err != nil {
			return schema.ComparisonResult{}, fmt.Errorf("cannot load property %d: %w", id, err)
		}
		props = append(props, p)
	}
	weights, _, _, err := effectiveWeights(cfg, store)
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	scored := runScoring(ctx, cfg, mgr, "compare", props, weights)
	return BuildComparison(cfg.Catalog, scored), nil
}

// ExecuteCompare prints the comparison matrix of the given properties.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, ids []int64) error {
	result, err := GetComparisonResult(ctx, cfg, mgr, ids)
	if err != nil {
		return err
	}
	return writer.WriteComparison(result, cfg)
}

// ParseIDs parses property ids from arguments. Each argument may itself be
// a comma-separated list.
func ParseIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for part := range strings.SplitSeq(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid property id '%s'", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// BuildCatalogSummary flattens the catalogue into one row per question.
// Choice questions list their options with scores; numeric questions their range.
func BuildCatalogSummary(c *catalog.Catalog, weights schema.Weights) []schema.CatalogSummary {
	var rows []schema.CatalogSummary
	for _, category := range c.Categories() {
		for _, q := range category.Questions {
			rows = append(rows, schema.CatalogSummary{
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Weight:       algo.EffectiveWeight(category, weights),
				QuestionID:   q.ID,
				Text:         q.Text,
				Type:         q.Type,
				Choices:      describeChoices(q),
				Critical:     q.Critical,
			})
		}
	}
	return rows
}

// describeChoices renders the answer space of a question.
func describeChoices(q schema.Question) string {
	switch q.Type {
	case schema.ChoiceQuestion:
		parts := make([]string, len(q.Options))
		for i, o := range q.Options {
			parts[i] = fmt.Sprintf("%s=%d", o.Value, o.Score)
		}
		return strings.Join(parts, " ")
	case schema.NumericQuestion:
		lo, hi := q.Range()
		s := fmt.Sprintf("%s..%s", strconv.FormatFloat(lo, 'f', -1, 64), strconv.FormatFloat(hi, 'f', -1, 64))
		if q.Unit != "" {
			s += " " + q.Unit
		}
		return s
	default:
		return "yes/no"
	}
}

// GetCatalogSummary returns the catalogue rows with the effective weights.
func GetCatalogSummary(cfg *contract.Config, mgr contract.StoreManager) ([]schema.CatalogSummary, error) {
	weights, _, _, err := effectiveWeights(cfg, mgr.GetRecordStore())
	if err != nil {
		return nil, err
	}
	return BuildCatalogSummary(cfg.Catalog, weights), nil
}

// ExecuteCatalog prints the question catalogue with the effective weights.
func ExecuteCatalog(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	rows, err := GetCatalogSummary(cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteCatalog(rows, cfg)
}

// GetExportResults scores every property in listing order (newest first),
// without applying the result limit.
func GetExportResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ScoredProperty, error) {
	store := mgr.GetRecordStore()
	props, err := store.ListProperties()
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	weights, _, _, err := effectiveWeights(cfg, store)
	if err != nil {
		return nil, err
	}
	return runScoring(ctx, cfg, mgr, "export", props, weights), nil
}

// ExecuteExport writes every scored property as csv, json or parquet.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	scored, err := GetExportResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteExport(scored, cfg.Catalog, cfg)
}
