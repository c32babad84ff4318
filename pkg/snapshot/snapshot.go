package snapshot

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/pantrylink/pantrylink/pkg/errors"
)

// A ShoppingItem is a single entry on the shopping list. The phone owns the
// item's lifetime; the watch only flips the Checked flag.
type ShoppingItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"isChecked"`

	// Aisle is the store aisle the item is found in, if known.
	Aisle string `json:"aisle,omitempty"`

	// Priority breaks ties when sorting items for display. Higher is sooner.
	Priority int `json:"priority"`

	EstimatedPrice *float64 `json:"estimatedPrice,omitempty"`
}

// An ExpiringItem is a pantry item approaching its expiration date. It's
// read-only on the watch, and recomputed by the phone on every sync.
type ExpiringItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ExpirationDate time.Time `json:"expirationDate"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	Location       string    `json:"location"`

	// DaysUntilExpiration is derived from ExpirationDate relative to the time
	// the snapshot was built. It's precomputed so the watch doesn't need to do
	// date math.
	DaysUntilExpiration int `json:"daysUntilExpiration"`
}

// A QuickAddPreset is a common grocery item with default quantity and unit,
// used to populate one-tap add affordances on the watch.
type QuickAddPreset struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Snapshot is the full sync payload pushed from the phone to the watch. It's
// immutable once constructed, and replaced wholesale on each successful sync.
type Snapshot struct {
	ShoppingItems   []ShoppingItem   `json:"shoppingItems"`
	ExpiringItems   []ExpiringItem   `json:"expiringItems"`
	QuickAddPresets []QuickAddPreset `json:"quickAddPresets"`
	LastSyncTime    time.Time        `json:"lastSyncDate"`

	// ListName is the name of the active shopping list, if one is set.
	ListName string `json:"shoppingListName,omitempty"`
}

// Marshal converts the snapshot into its wire encoding. Unlike action
// messages, numeric fields are encoded as native JSON numbers.
func (s Snapshot) Marshal() ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, errors.WithContext(err, "encode")
	}
	return payload, nil
}

// Unmarshal parses the wire encoding of a snapshot. Unknown fields are
// ignored so that older watches can decode snapshots from newer phones.
func Unmarshal(payload []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return Snapshot{}, errors.WithContext(err, "decode")
	}
	return s, nil
}

// Lookup returns the shopping item with the given id.
func (s Snapshot) Lookup(id string) (ShoppingItem, bool) {
	for _, item := range s.ShoppingItems {
		if item.ID == id {
			return item, true
		}
	}
	return ShoppingItem{}, false
}

// Copy returns a deep copy of the snapshot. Callers that mutate a snapshot
// (e.g. for optimistic updates) must work on a copy so that the replaced
// snapshot can be restored if the update is rolled back.
func (s Snapshot) Copy() Snapshot {
	copied := s
	copied.ShoppingItems = append([]ShoppingItem(nil), s.ShoppingItems...)
	copied.ExpiringItems = append([]ExpiringItem(nil), s.ExpiringItems...)
	copied.QuickAddPresets = append([]QuickAddPreset(nil), s.QuickAddPresets...)
	for i, item := range copied.ShoppingItems {
		if item.EstimatedPrice != nil {
			price := *item.EstimatedPrice
			copied.ShoppingItems[i].EstimatedPrice = &price
		}
	}
	return copied
}

// SortForDisplay orders shopping items the way the watch displays them:
// unchecked items before checked items, then by descending priority, then by
// name so that the order is stable across syncs.
func SortForDisplay(items []ShoppingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Checked != items[j].Checked {
			return !items[i].Checked
		}
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].Name < items[j].Name
	})
}

// DaysUntil computes the whole days between now and the expiration date.
// Partial days are truncated, so an item expiring within the next 24 hours
// reports 0, and an item already expired reports a negative count.
func DaysUntil(now, expiration time.Time) int {
	return int(expiration.Sub(now).Hours() / 24)
}
