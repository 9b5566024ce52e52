package algo

import (
	"sort"
	"strings"

	"github.com/huangsam/nestscore/schema"
)

// Scored is anything carrying precomputed overall and category scores.
type Scored interface {
	GetOverallScore() int
	GetCategoryScore(categoryID string) int
}

// BestOverall returns the index of the entry with the highest overall score.
// Ties go to the earliest entry. ok is false only for an empty input.
func BestOverall[T Scored](items []T) (idx int, ok bool) {
	if len(items) == 0 {
		return -1, false
	}
	idx = 0
	for i := 1; i < len(items); i++ {
		if items[i].GetOverallScore() > items[idx].GetOverallScore() {
			idx = i
		}
	}
	return idx, true
}

// BestForCategory returns the index of the highest score for a category.
// Ties go to the earliest entry. A maximum of zero has no winner.
func BestForCategory[T Scored](items []T, categoryID string) (idx int, ok bool) {
	idx = -1
	best := 0
	for i, item := range items {
		if s := item.GetCategoryScore(categoryID); s > best {
			best, idx = s, i
		}
	}
	return idx, idx >= 0
}

// CategoryWinners returns every index sharing the maximum category score,
// or nil when the maximum is zero.
func CategoryWinners[T Scored](items []T, categoryID string) []int {
	best, ok := BestForCategory(items, categoryID)
	if !ok {
		return nil
	}
	top := items[best].GetCategoryScore(categoryID)
	var winners []int
	for i, item := range items {
		if item.GetCategoryScore(categoryID) == top {
			winners = append(winners, i)
		}
	}
	return winners
}

// WorstForCategory returns the index of the lowest non-zero score that is still
// below the row maximum. When every entry ties or scores zero there is no worst.
func WorstForCategory[T Scored](items []T, categoryID string) (idx int, ok bool) {
	if len(items) == 0 {
		return -1, false
	}
	top := 0
	for _, item := range items {
		top = max(top, item.GetCategoryScore(categoryID))
	}

	idx = -1
	worst := top
	for i, item := range items {
		if s := item.GetCategoryScore(categoryID); s > 0 && s < worst {
			worst, idx = s, i
		}
	}
	return idx, idx >= 0
}

// RankProperties sorts scored properties by the requested mode and returns
// the top 'limit' entries. Sorting is stable, so ties keep input order.
func RankProperties(props []schema.ScoredProperty, mode schema.SortMode, limit int) []schema.ScoredProperty {
	var less func(a, b schema.ScoredProperty) bool
	switch mode {
	case schema.SortByName:
		less = func(a, b schema.ScoredProperty) bool {
			return strings.ToLower(a.Property.Name) < strings.ToLower(b.Property.Name)
		}
	case schema.SortByCreated:
		less = func(a, b schema.ScoredProperty) bool {
			return a.Property.CreatedAt.After(b.Property.CreatedAt)
		}
	case schema.SortByPrice:
		less = func(a, b schema.ScoredProperty) bool {
			return a.Property.Price < b.Property.Price
		}
	default:
		less = func(a, b schema.ScoredProperty) bool {
			return a.Score.OverallScore > b.Score.OverallScore
		}
	}
	sort.SliceStable(props, func(i, j int) bool { return less(props[i], props[j]) })
	if limit > 0 && len(props) > limit {
		return props[:limit]
	}
	return props
}
