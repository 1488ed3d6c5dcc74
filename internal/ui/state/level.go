package state

// Level holds the pattern menu: its items, filter, cursor and viewport.
// Current names the loaded pattern; it is blank when none is loaded.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	Current        string
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level using the provided items.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index of the pattern entry with the given id.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.Kind == ItemPattern && item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the items, keeping the viewport and the cursor on the
// current pattern when it is still listed.
func (l *Level) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if idx := l.IndexOf(l.Current); idx >= 0 {
		l.Cursor = idx
	}
	l.skipSeparator(1)
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// SetCurrent records the loaded pattern and moves the cursor onto it.
// An empty name clears the marker and leaves the cursor where it was.
func (l *Level) SetCurrent(name string) {
	l.Current = name
	if idx := l.IndexOf(name); idx >= 0 {
		l.Cursor = idx
	}
}

// IsCurrent reports whether item is the loaded pattern.
func (l *Level) IsCurrent(item Item) bool {
	return item.Kind == ItemPattern && l.Current != "" && item.ID == l.Current
}

// Selected returns the item under the cursor.
func (l *Level) Selected() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	item := l.Items[l.Cursor]
	if !item.Selectable() {
		return Item{}, false
	}
	return item, true
}
