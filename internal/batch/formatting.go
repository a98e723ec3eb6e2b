package batch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatResult renders a batch result as JSON or a plain text summary.
func FormatResult(res *Result, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal results: %w", err)
		}
		return string(data), nil
	case "text":
		return formatText(res), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatText(res *Result) string {
	var b strings.Builder
	failed := 0
	for _, f := range res.Files {
		if f.Error != "" {
			failed++
			fmt.Fprintf(&b, "%s: error: %s\n", f.Path, f.Error)
			continue
		}
		if f.Result == nil || f.Result.Region == nil {
			fmt.Fprintf(&b, "%s: no region found\n", f.Path)
			continue
		}
		fmt.Fprintf(&b, "%s: %d ridges (%s, %s)\n",
			f.Path, f.Result.Region.RidgeCount, f.Result.Region.Diagonal, f.Result.Region.Region.String())
	}
	fmt.Fprintf(&b, "\n%d files, %d failed, %v elapsed (%d workers)\n",
		len(res.Files), failed, res.Duration.Round(1e6), res.WorkerCount)
	return b.String()
}
