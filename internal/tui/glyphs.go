package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, but we can pick between
// Unicode and ASCII glyph sets for affordances (checkboxes, clock markers,
// the drop slot). That keeps the board usable on fonts that render some
// glyphs poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("TEMPO_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphDoneBox(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "☑"
	}
	return "☐"
}

func glyphClock() string {
	if glyphs() == glyphSetASCII {
		return "@"
	}
	return "◷"
}

func glyphDropSlot() string {
	if glyphs() == glyphSetASCII {
		return ">>"
	}
	return "▸▸"
}
