package cli

import (
	"fmt"
	"strings"
	"time"

	"tempo-cli/internal/model"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

// resolveDate accepts YYYY-MM-DD plus the "today"/"tomorrow"/"yesterday"
// conveniences used throughout the CLI.
func resolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today(), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format("2006-01-02"), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format("2006-01-02"), nil
	}
	s = strings.TrimSpace(s)
	if !model.ValidDate(s) {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today, tomorrow, or yesterday)", s)
	}
	return s, nil
}
