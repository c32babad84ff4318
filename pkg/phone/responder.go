package phone

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/pantrylink/pantrylink/pkg/channel"
	"github.com/pantrylink/pantrylink/pkg/snapshot"
	"github.com/pantrylink/pantrylink/pkg/wire"
)

// How long a single incoming message may spend touching the store and
// pushing updates before we give up on it.
const applyTimeout = 30 * time.Second

// Mocked for unit testing.
var newItemID = uuid.NewString

// Responder applies messages from watches to the store and answers sync
// requests with fresh snapshots. Messages are applied in arrival order, one
// at a time, so the store never sees concurrent writes from peers.
type Responder struct {
	store     *Store
	messenger channel.Messenger
	clock     clockwork.Clock

	// window bounds how far ahead expiring pantry items are reported.
	window time.Duration
}

// NewResponder creates a responder backed by the given store.
func NewResponder(store *Store, messenger channel.Messenger,
	window time.Duration) *Responder {
	return NewResponderWithClock(store, messenger, window, clockwork.NewRealClock())
}

// NewResponderWithClock is NewResponder with an injectable clock for tests.
func NewResponderWithClock(store *Store, messenger channel.Messenger,
	window time.Duration, clock clockwork.Clock) *Responder {

	return &Responder{
		store:     store,
		messenger: messenger,
		clock:     clock,
		window:    window,
	}
}

// HandleMessage processes one transient message from a peer. Malformed or
// stale messages are logged and dropped. The sender gets no signal either
// way, so nothing here returns an error.
func (r *Responder) HandleMessage(sender, path string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	switch path {
	case wire.SyncRequest:
		r.handleSyncRequest(ctx, sender)
	case wire.ItemChecked, wire.ItemUnchecked:
		r.handleToggle(ctx, sender, payload)
	case wire.ItemAdded:
		r.handleAdd(ctx, sender, payload)
	default:
		log.WithFields(log.Fields{
			"sender": sender,
			"path":   path,
		}).Debug("Ignoring message on unhandled path")
	}
}

// HandleData processes a data item from a peer. Watches never push data
// items, so anything arriving here is from a newer peer we don't understand.
func (r *Responder) HandleData(sender, path string, _ []byte) {
	log.WithFields(log.Fields{
		"sender": sender,
		"path":   path,
	}).Debug("Ignoring unexpected data item")
}

func (r *Responder) handleSyncRequest(ctx context.Context, sender string) {
	snap, err := r.BuildSnapshot(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to build sync snapshot")
		return
	}

	node, ok := r.findNode(ctx, sender)
	if !ok {
		log.WithField("sender", sender).Warn(
			"Dropping sync response for unreachable peer")
		return
	}

	if err := r.putSnapshot(ctx, node, snap); err != nil {
		log.WithError(err).WithField("peer", sender).Warn(
			"Failed to push sync snapshot")
		return
	}
	log.WithFields(log.Fields{
		"peer":  sender,
		"items": len(snap.ShoppingItems),
	}).Info("Answered sync request")
}

func (r *Responder) handleToggle(ctx context.Context, sender string, payload []byte) {
	action, err := wire.UnmarshalToggleAction(payload)
	if err != nil {
		log.WithError(err).WithField("sender", sender).Warn(
			"Discarding malformed toggle action")
		return
	}

	matched, err := r.store.SetItemChecked(ctx, action.ID, action.Checked)
	if err != nil {
		log.WithError(err).Warn("Failed to apply toggle action")
		return
	}
	if !matched {
		// The item was removed on the phone after the watch's last sync. The
		// follow-up snapshot below would not change anything, so skip it.
		log.WithFields(log.Fields{
			"sender": sender,
			"id":     action.ID,
		}).Debug("Ignoring toggle for unknown item")
		return
	}

	r.broadcastUpdate(ctx)
}

func (r *Responder) handleAdd(ctx context.Context, sender string, payload []byte) {
	action, err := wire.UnmarshalAddAction(payload)
	if err != nil {
		log.WithError(err).WithField("sender", sender).Warn(
			"Discarding malformed add action")
		return
	}

	item := snapshot.ShoppingItem{
		ID:       newItemID(),
		Name:     action.Name,
		Quantity: action.Quantity,
		Unit:     action.Unit,
	}
	if err := r.store.InsertShoppingItem(ctx, item); err != nil {
		log.WithError(err).Warn("Failed to apply add action")
		return
	}
	log.WithFields(log.Fields{
		"sender": sender,
		"name":   action.Name,
	}).Info("Added shopping item from peer")

	r.broadcastUpdate(ctx)
}

// BuildSnapshot assembles a fresh sync snapshot from the store. Expiration
// day counts are computed against the current time, so repeated calls with
// unchanged data can still produce different snapshots.
func (r *Responder) BuildSnapshot(ctx context.Context) (snapshot.Snapshot, error) {
	now := r.clock.Now().UTC()

	items, err := r.store.ListShoppingItems(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	expiring, err := r.store.ListExpiringItems(ctx, now, r.window)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	presets, err := r.store.ListPresets(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	listName, err := r.store.ActiveListName(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	return snapshot.Snapshot{
		ShoppingItems:   items,
		ExpiringItems:   expiring,
		QuickAddPresets: presets,
		LastSyncTime:    now,
		ListName:        listName,
	}, nil
}

// AnnounceRefresh tells every reachable peer that its cached snapshot is out
// of date, then pushes a fresh snapshot so peers that miss the nudge still
// converge. Delivery is best effort.
func (r *Responder) AnnounceRefresh(ctx context.Context) {
	snap, err := r.BuildSnapshot(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to build sync snapshot")
		return
	}

	for _, node := range r.messenger.ReachableNodes(ctx) {
		if err := r.messenger.Send(ctx, node, wire.RefreshRequired, nil); err != nil {
			log.WithError(err).WithField("peer", node.ID).Debug(
				"Failed to send refresh notice")
		}
		if err := r.putSnapshot(ctx, node, snap); err != nil {
			log.WithError(err).WithField("peer", node.ID).Debug(
				"Failed to push sync snapshot")
		}
	}
}

// broadcastUpdate propagates a store change to all reachable peers,
// including the one whose action caused it.
func (r *Responder) broadcastUpdate(ctx context.Context) {
	r.AnnounceRefresh(ctx)
}

func (r *Responder) putSnapshot(ctx context.Context, node channel.Node,
	snap snapshot.Snapshot) error {

	payload, err := snap.Marshal()
	if err != nil {
		return err
	}
	return r.messenger.PutData(ctx, node, wire.SyncResponse, payload)
}

func (r *Responder) findNode(ctx context.Context, id string) (channel.Node, bool) {
	for _, node := range r.messenger.ReachableNodes(ctx) {
		if node.ID == id {
			return node, true
		}
	}
	return channel.Node{}, false
}
