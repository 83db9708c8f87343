// Package publish writes read-only markdown plan pages out of the workspace:
// one file per day, plus a week index. The output is for sharing or dropping
// into a notes repo; nothing reads it back.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"tempo-cli/internal/order"
	"tempo-cli/internal/store"
)

type WriteOptions struct {
	IncludeDone  bool
	IncludeNotes bool
	Overwrite    bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteDay renders one day to <toDir>/days/<date>.md.
func WriteDay(db *store.DB, date string, toDir string, opt WriteOptions) (WriteResult, error) {
	if db == nil {
		return WriteResult{}, errors.New("missing db")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}

	md, err := RenderDayMarkdown(db, date, RenderOptions{
		IncludeDone:  opt.IncludeDone,
		IncludeNotes: opt.IncludeNotes,
	})
	if err != nil {
		return WriteResult{}, err
	}

	outDir := filepath.Join(filepath.Clean(toDir), "days")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, date+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteWeek renders the week containing anchor: seven day pages plus an
// index.md linking them, under <toDir>/weeks/<monday>/.
func WriteWeek(db *store.DB, anchor string, toDir string, opt WriteOptions) (WriteResult, error) {
	if db == nil {
		return WriteResult{}, errors.New("missing db")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}

	dates := order.WeekDates(anchor)
	weekDir := filepath.Join(filepath.Clean(toDir), "weeks", dates[0])
	if err := os.MkdirAll(weekDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexMD, err := RenderWeekIndexMarkdown(db, dates)
	if err != nil {
		return WriteResult{}, err
	}
	indexPath := filepath.Join(weekDir, "index.md")
	if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, d := range dates {
		md, err := RenderDayMarkdown(db, d, RenderOptions{
			IncludeDone:  opt.IncludeDone,
			IncludeNotes: opt.IncludeNotes,
		})
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(weekDir, d+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
