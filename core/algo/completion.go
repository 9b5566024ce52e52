package algo

import "github.com/huangsam/nestscore/schema"

// CategoryCompletion returns how many of a category's questions are answered.
// Unknown categories report (0, 0).
func CategoryCompletion(cat Catalogue, categoryID string, answers schema.Answers) (answered, total int) {
	category, ok := cat.Category(categoryID)
	if !ok {
		return 0, 0
	}
	return countAnswered(category, answers), len(category.Questions)
}

// CompletionPercentage is the share of all catalogue questions answered,
// regardless of category weight, as an integer percentage.
func CompletionPercentage(cat Catalogue, answers schema.Answers) int {
	total := cat.TotalQuestions()
	if total == 0 {
		return 0
	}
	answered := 0
	for _, category := range cat.Categories() {
		answered += countAnswered(category, answers)
	}
	return roundHalfUp(100 * float64(answered) / float64(total))
}

func countAnswered(category schema.Category, answers schema.Answers) int {
	n := 0
	for _, q := range category.Questions {
		if a, ok := answers[q.ID]; ok && a.IsAnswered() {
			n++
		}
	}
	return n
}
