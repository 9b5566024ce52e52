package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor marks a strong match.
	GoodColor      = color.New(color.FgCyan)              // GoodColor marks a solid match.
	FairColor      = color.New(color.FgYellow)            // FairColor marks a compromise.
	PoorColor      = color.New(color.FgRed, color.Bold)   // PoorColor marks a likely deal-breaker.
)

// GetPlainLabel returns the plain text label for a score. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(score int) string {
	return algo.Classify(score).Label
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score int) string {
	c := algo.Classify(score)
	return TierColor(c.Tier).Sprint(c.Label)
}

// TierColor maps a tier to its console color.
func TierColor(tier schema.Tier) *color.Color {
	switch tier {
	case schema.TierExcellent:
		return ExcellentColor
	case schema.TierGood:
		return GoodColor
	case schema.TierFair:
		return FairColor
	default:
		return PoorColor
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRecordDBFilePath returns the path to the SQLite DB file for property records.
func GetRecordDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".nestscore.db"
	}
	return filepath.Join(homeDir, ".nestscore.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for score history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".nestscore_history.db"
	}
	return filepath.Join(homeDir, ".nestscore_history.db")
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// NormalizePostcode strips whitespace and uppercases a postcode.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
}
