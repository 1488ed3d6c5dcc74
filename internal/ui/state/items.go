package state

// ItemKind distinguishes pattern entries from the fixed menu furniture.
type ItemKind int

const (
	ItemPattern ItemKind = iota
	ItemSeparator
	ItemClearRecents
)

const (
	separatorLabel    = "────────"
	ClearRecentsLabel = "Clear Recents"
	clearRecentsID    = "clear-recents"
	separatorID       = "separator"
)

// Item is one row of the pattern menu.
type Item struct {
	ID    string
	Label string
	Kind  ItemKind
}

// Selectable reports whether the cursor may rest on the item.
func (i Item) Selectable() bool {
	return i.Kind != ItemSeparator
}

// PatternItems builds the menu for the server's recent pattern names: one
// entry per name, then a separator and "Clear Recents".
func PatternItems(names []string) []Item {
	items := make([]Item, 0, len(names)+2)
	for _, name := range names {
		items = append(items, Item{ID: name, Label: name, Kind: ItemPattern})
	}
	items = append(items,
		Item{ID: separatorID, Label: separatorLabel, Kind: ItemSeparator},
		Item{ID: clearRecentsID, Label: ClearRecentsLabel, Kind: ItemClearRecents},
	)
	return items
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
