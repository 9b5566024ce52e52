package outwriter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/huangsam/nestscore/internal/contract"
)

// errParquetUnsupported is returned by views that have no parquet rendition.
var errParquetUnsupported = errors.New("parquet output is only supported by export and history export")

// scoreLabel returns the tier label, colored when colors are enabled.
func scoreLabel(score int, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(score)
	}
	return contract.GetPlainLabel(score)
}

// heading prefixes a title with an emoji when emojis are enabled.
func heading(emoji, title string, cfg *contract.Config) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}

// formatPrice renders a whole-pound price with thousands separators.
func formatPrice(price int) string {
	if price <= 0 {
		return "-"
	}
	digits := strconv.Itoa(price)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return "£" + string(out)
}

// formatPercent renders a 0-100 value as a percentage.
func formatPercent(v int) string {
	return fmt.Sprintf("%d%%", v)
}

// orDash replaces an empty value with a dash.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
