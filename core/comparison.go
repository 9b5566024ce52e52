package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/schema"
)

// overallRowKey is the key of the overall row in a comparison.
const overallRowKey = "overall"

// BuildComparison lays out scored properties as a matrix. Rows cover the
// categories with a non-zero default weight, in catalogue order, plus the
// overall score. Best and worst cells follow the ranking rules in algo.
func BuildComparison(c *catalog.Catalog, scored []schema.ScoredProperty) schema.ComparisonResult {
	result := schema.ComparisonResult{
		Columns:    make([]schema.ComparisonColumn, len(scored)),
		Completion: make([]int, len(scored)),
	}
	for i, sp := range scored {
		result.Columns[i] = schema.ComparisonColumn{
			PropertyID: sp.Property.ID,
			Name:       sp.Property.Name,
			Postcode:   sp.Property.Postcode,
			Price:      sp.Property.Price,
		}
		result.Completion[i] = sp.Completion
	}

	for _, category := range c.ScoredCategories() {
		row := schema.ComparisonRow{
			Key:   category.ID,
			Name:  category.Name,
			Cells: make([]schema.ComparisonCell, len(scored)),
		}
		for i, sp := range scored {
			row.Cells[i].Score = sp.GetCategoryScore(category.ID)
		}
		if best, ok := algo.BestForCategory(scored, category.ID); ok {
			row.Cells[best].Best = true
		}
		if worst, ok := algo.WorstForCategory(scored, category.ID); ok {
			row.Cells[worst].Worst = true
		}
		result.Categories = append(result.Categories, row)
	}

	result.Overall = overallRow(scored)
	for i, cell := range result.Overall.Cells {
		if cell.Best {
			id := scored[i].Property.ID
			result.BestOverall = &id
		}
	}
	return result
}

// overallRow marks the best and worst overall scores. A zero overall score
// never wins, matching the category rows.
func overallRow(scored []schema.ScoredProperty) schema.ComparisonRow {
	row := schema.ComparisonRow{
		Key:   overallRowKey,
		Name:  "Overall",
		Cells: make([]schema.ComparisonCell, len(scored)),
	}
	top := 0
	for i, sp := range scored {
		row.Cells[i].Score = sp.GetOverallScore()
		top = max(top, sp.GetOverallScore())
	}
	if best, ok := algo.BestOverall(scored); ok && top > 0 {
		row.Cells[best].Best = true
	}
	worstIdx, worst := -1, top
	for i, sp := range scored {
		if s := sp.GetOverallScore(); s > 0 && s < worst {
			worstIdx, worst = i, s
		}
	}
	if worstIdx >= 0 {
		row.Cells[worstIdx].Worst = true
	}
	return row
}

// validateCompareIDs checks the number of ids and rejects duplicates.
func validateCompareIDs(ids []int64, maxItems int) error {
	if len(ids) == 0 {
		return errors.New("at least one property id is required")
	}
	if len(ids) > maxItems {
		return fmt.Errorf("cannot compare more than %d properties (received %d)", maxItems, len(ids))
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("property %d is listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
