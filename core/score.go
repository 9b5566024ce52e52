package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// scoreJob is one property waiting to be scored, with its input position.
type scoreJob struct {
	index    int
	property schema.Property
}

// scoreProperty computes the score and completion for a single property.
func scoreProperty(c *catalog.Catalog, p schema.Property, weights schema.Weights) schema.ScoredProperty {
	return schema.ScoredProperty{
		Property:   p,
		Score:      algo.ScoreProperty(c, p, weights),
		Completion: algo.CompletionPercentage(c, p.Answers),
	}
}

// scoreProperties scores every property with a pool of cfg.Workers goroutines.
// Results keep the input order. When a history run is attached to the
// context, each result is recorded as it is produced.
func scoreProperties(ctx context.Context, cfg *contract.Config, history contract.HistoryStore, props []schema.Property, weights schema.Weights) []schema.ScoredProperty {
	jobCh := make(chan scoreJob, len(props))
	results := make([]schema.ScoredProperty, len(props))
	runID, tracking := getRunID(ctx)
	var wg sync.WaitGroup

	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for job := range jobCh {
				// Each worker writes to a unique index
				sp := scoreProperty(cfg.Catalog, job.property, weights)
				results[job.index] = sp
				if tracking && history != nil {
					recordPropertyScore(history, runID, sp)
				}
			}
		})
	}

	for i, p := range props {
		jobCh <- scoreJob{index: i, property: p}
	}
	close(jobCh)
	wg.Wait()

	return results
}

// recordPropertyScore stores one scored property in the history run.
func recordPropertyScore(history contract.HistoryStore, runID int64, sp schema.ScoredProperty) {
	record := schema.NewPropertyScoreRecord(runID, sp, contract.GetPlainLabel(sp.Score.OverallScore), time.Now())
	if err := history.RecordPropertyScore(record); err != nil {
		contract.LogWarn(fmt.Sprintf("Score tracking failed for property %d", sp.Property.ID), err)
	}
}

// runScoring wraps scoreProperties with history run tracking. A failing
// history store never aborts scoring.
func runScoring(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, command string, props []schema.Property, weights schema.Weights) []schema.ScoredProperty {
	history := mgr.GetHistoryStore()
	if history == nil {
		return scoreProperties(ctx, cfg, nil, props, weights)
	}

	params := map[string]any{
		"command":      command,
		"sort":         string(cfg.SortBy),
		"workers":      cfg.Workers,
		"result_limit": cfg.ResultLimit,
		"weights":      weights,
	}
	if cfg.CatalogPath != "" {
		params["catalog"] = cfg.CatalogPath
	}
	runID, err := history.BeginRun(time.Now(), params)
	if err != nil {
		contract.LogWarn("Score tracking initialization failed", err)
		return scoreProperties(ctx, cfg, nil, props, weights)
	}
	if runID > 0 {
		ctx = withRunID(ctx, runID)
	}

	scored := scoreProperties(ctx, cfg, history, props, weights)

	if runID > 0 {
		if err := history.EndRun(runID, time.Now(), len(scored)); err != nil {
			contract.LogWarn("Failed to finalize score tracking", err)
		}
	}
	return scored
}

// GetPropertyResults loads, scores and ranks all properties. It returns the
// ranked slice (limited by cfg.ResultLimit) and the number of properties scored.
func GetPropertyResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ScoredProperty, int, error) {
	store := mgr.GetRecordStore()
	props, err := store.ListProperties()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	weights, _, _, err := effectiveWeights(cfg, store)
	if err != nil {
		return nil, 0, err
	}

	scored := runScoring(ctx, cfg, mgr, "list", props, weights)
	return algo.RankProperties(scored, cfg.SortBy, cfg.ResultLimit), len(scored), nil
}
