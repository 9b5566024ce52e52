package outwriter

import (
	"os"

	"github.com/huangsam/nestscore/internal/contract"
	"golang.org/x/term"
)

const (
	minNameWidth = 15
	maxNameWidth = 50

	// categoryColumnWidth is the room taken by one per-category score column.
	categoryColumnWidth = 8
)

// terminalWidth returns the width override, the detected terminal width or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// GetMaxTableNameWidth calculates how wide the property name column can be in
// the listing table, given how many per-category columns are shown next to it.
func GetMaxTableNameWidth(cfg *contract.Config, categoryColumns int) int {
	// Rank + Postcode + Price + Score + Label + Complete, with borders
	baseWidth := 60
	if cfg.Detail {
		baseWidth += categoryColumns * categoryColumnWidth
	}

	available := terminalWidth(cfg) - baseWidth
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}
