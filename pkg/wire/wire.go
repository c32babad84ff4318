package wire

import (
	"encoding/json"
	"strconv"

	"github.com/pantrylink/pantrylink/pkg/errors"
)

// The message catalogue for the device-to-device channel. Action messages
// travel on the transient message channel, and the sync snapshot travels on
// the data-item channel.
const (
	// SyncRequest asks a peer to push a fresh snapshot. Zero payload.
	SyncRequest = "sync_request"

	// SyncResponse carries a JSON-encoded snapshot. Delivered via the
	// data-item channel rather than the transient message channel.
	SyncResponse = "sync_response"

	// ItemChecked and ItemUnchecked report a checked-state change for a
	// shopping item.
	ItemChecked   = "item_checked"
	ItemUnchecked = "item_unchecked"

	// ItemAdded reports a new shopping item entered on the watch.
	ItemAdded = "item_added"

	// RefreshRequired tells a peer that its snapshot is stale. Zero payload.
	RefreshRequired = "refresh_required"
)

// Action payloads are JSON maps whose values are all strings, including
// numeric fields. This matches the encoding of the watch platform's message
// channel, which only carries string-to-string maps. Unknown keys must be
// ignored on decode for forward compatibility.

// ToggleAction reports that a shopping item was checked or unchecked.
type ToggleAction struct {
	ID      string
	Checked bool
}

type toggleWire struct {
	ID      string `json:"id"`
	Checked string `json:"checked"`
}

// Path returns the message path on which the action should be sent.
func (a ToggleAction) Path() string {
	if a.Checked {
		return ItemChecked
	}
	return ItemUnchecked
}

// Marshal encodes the action for the message channel.
func (a ToggleAction) Marshal() ([]byte, error) {
	return json.Marshal(toggleWire{
		ID:      a.ID,
		Checked: strconv.FormatBool(a.Checked),
	})
}

// UnmarshalToggleAction decodes an item_checked or item_unchecked payload.
func UnmarshalToggleAction(payload []byte) (ToggleAction, error) {
	var wire toggleWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return ToggleAction{}, errors.WithContext(err, "decode")
	}

	if wire.ID == "" {
		return ToggleAction{}, errors.MissingFieldError{Field: "id"}
	}

	checked, err := strconv.ParseBool(wire.Checked)
	if err != nil {
		return ToggleAction{}, errors.WithContext(err, "parse checked")
	}
	return ToggleAction{ID: wire.ID, Checked: checked}, nil
}

// AddAction reports a new shopping item with its literal field values. The
// item ID is assigned by the phone, so the action doesn't carry one.
type AddAction struct {
	Name     string
	Quantity float64
	Unit     string
}

type addWire struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Path returns the message path on which the action should be sent.
func (a AddAction) Path() string {
	return ItemAdded
}

// Marshal encodes the action for the message channel. The quantity is
// transmitted as a decimal-formatted string.
func (a AddAction) Marshal() ([]byte, error) {
	return json.Marshal(addWire{
		Name:     a.Name,
		Quantity: strconv.FormatFloat(a.Quantity, 'f', -1, 64),
		Unit:     a.Unit,
	})
}

// UnmarshalAddAction decodes an item_added payload.
func UnmarshalAddAction(payload []byte) (AddAction, error) {
	var wire addWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return AddAction{}, errors.WithContext(err, "decode")
	}

	if wire.Name == "" {
		return AddAction{}, errors.MissingFieldError{Field: "name"}
	}
	if wire.Quantity == "" {
		return AddAction{}, errors.MissingFieldError{Field: "quantity"}
	}

	quantity, err := strconv.ParseFloat(wire.Quantity, 64)
	if err != nil {
		return AddAction{}, errors.WithContext(err, "parse quantity")
	}
	return AddAction{Name: wire.Name, Quantity: quantity, Unit: wire.Unit}, nil
}
