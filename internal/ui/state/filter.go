package state

import (
	"path"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// nameSeparators split a pattern name into segments for ctrl+w.
const nameSeparators = " .-_"

// SetFilter updates the filter query and cursor position. The menu cursor
// jumps to the best matching pattern while a query is active and returns to
// where it was once the query is cleared.
func (l *Level) SetFilter(query string, cursor int) {
	wasActive := strings.TrimSpace(l.Filter) != ""
	active := strings.TrimSpace(query) != ""
	l.Filter = query
	l.FilterCursor = clamp(cursor, 0, len([]rune(query)))

	if active && !wasActive {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()
	switch {
	case active:
		l.Cursor = 0
		if idx := bestMatch(l.Items, query); idx >= 0 {
			l.Cursor = idx
		}
	case wasActive:
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
	l.skipSeparator(1)
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return clamp(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// InsertFilterText types text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	insert := []rune(text)
	updated := append(append(append([]rune{}, runes[:pos]...), insert...), runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward is backspace.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	return l.deleteFilterRange(pos-1, pos)
}

// DeleteFilterSegmentBackward removes the name segment before the cursor,
// so "twill.wi" becomes "twill." and "rose-path" becomes "rose-".
func (l *Level) DeleteFilterSegmentBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	i := pos
	for i > 0 && strings.ContainsRune(nameSeparators, runes[i-1]) {
		i--
	}
	for i > 0 && !strings.ContainsRune(nameSeparators, runes[i-1]) {
		i--
	}
	return l.deleteFilterRange(i, pos)
}

func (l *Level) deleteFilterRange(from, to int) bool {
	runes := []rune(l.Filter)
	updated := append(append([]rune{}, runes[:from]...), runes[to:]...)
	l.SetFilter(string(updated), from)
	return true
}

// MoveFilterCursor moves the filter cursor by delta runes.
func (l *Level) MoveFilterCursor(delta int) bool {
	pos := l.FilterCursorPos()
	next := clamp(pos+delta, 0, len([]rune(l.Filter)))
	if next == pos {
		return false
	}
	l.FilterCursor = next
	return true
}

// MoveFilterCursorStart moves the filter cursor before the first rune.
func (l *Level) MoveFilterCursorStart() bool {
	return l.MoveFilterCursor(-l.FilterCursorPos())
}

// MoveFilterCursorEnd moves the filter cursor after the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.MoveFilterCursor(len([]rune(l.Filter)) - l.FilterCursorPos())
}

// FilterItems returns the entries whose name fuzzily matches query, in
// server order. The separator only survives an empty query.
func FilterItems(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneItems(items)
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Selectable() {
			continue
		}
		if fuzzy.MatchNormalizedFold(query, item.Label) {
			filtered = append(filtered, item)
		}
	}
	return CloneItems(filtered)
}

// bestMatch picks the entry the cursor should land on: an exact name or
// stem first, then a name prefix, then the closest fuzzy match.
func bestMatch(items []Item, query string) int {
	query = strings.TrimSpace(query)
	if len(items) == 0 || query == "" {
		return -1
	}
	prefix := -1
	for i, item := range items {
		if strings.EqualFold(item.Label, query) || strings.EqualFold(stem(item.Label), query) {
			return i
		}
		if prefix < 0 && strings.HasPrefix(strings.ToLower(item.Label), strings.ToLower(query)) {
			prefix = i
		}
	}
	if prefix >= 0 {
		return prefix
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels) {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	return best
}

// stem strips the file extension from a pattern name.
func stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
