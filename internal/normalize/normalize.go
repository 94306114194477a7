package normalize

import (
	"strings"
	"unicode/utf8"
)

// MinBlockLen is the minimum rendered length of a feed item. Anything
// shorter is UI chrome (timestamps, reaction counters) and is dropped
// before classification ever sees it.
const MinBlockLen = 50

// Delimiters describe how a source platform separates feed items inside
// the rendered page text. Both markers are literal strings, not patterns.
type Delimiters struct {
	// Start marks the beginning of a feed item.
	Start string
	// End marks where the item's own text stops and the platform chrome
	// (reactions, comment box) begins. Empty means keep the whole segment.
	End string
}

// Split segments one page-text snapshot into candidate block texts.
// Pure and deterministic: identical input always yields identical output.
func Split(text string, d Delimiters) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var segments []string
	if d.Start == "" {
		segments = []string{text}
	} else {
		parts := strings.Split(text, d.Start)
		if len(parts) < 2 {
			return nil
		}
		segments = parts[1:]
	}

	var blocks []string
	for _, seg := range segments {
		if d.End != "" {
			if i := strings.Index(seg, d.End); i >= 0 {
				seg = seg[:i]
			}
		}
		seg = strings.TrimSpace(seg)
		if utf8.RuneCountInString(seg) < MinBlockLen {
			continue
		}
		blocks = append(blocks, seg)
	}
	return blocks
}
