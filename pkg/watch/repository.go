package watch

import (
	"context"
	gosync "sync"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/pantrylink/pantrylink/pkg/channel"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/snapshot"
	"github.com/pantrylink/pantrylink/pkg/wire"
)

// Repository owns the watch's last-known copy of the sync snapshot and
// mediates all watch-to-phone traffic. It applies user actions optimistically
// so the display stays responsive, and rolls them back if delivery fails.
//
// Peer-unreachable, send-failure, and decode-failure all degrade to "no state
// change" rather than propagating to the caller. The only observable signals
// are the Syncing flag and the snapshot contents.
type Repository struct {
	messenger channel.Messenger
	clock     clockwork.Clock

	// syncTimeout bounds how long Syncing reports true after a sync request
	// with no response. Without it, a dropped response would leave the
	// syncing indicator stuck forever.
	syncTimeout time.Duration

	lock         gosync.Mutex
	snapshot     snapshot.Snapshot
	lastSyncTime time.Time
	syncing      bool
	syncDeadline time.Time
}

// New returns a Repository that syncs through the given messenger.
func New(messenger channel.Messenger, syncTimeout time.Duration) *Repository {
	return NewWithClock(messenger, syncTimeout, clockwork.NewRealClock())
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock(messenger channel.Messenger, syncTimeout time.Duration,
	clock clockwork.Clock) *Repository {

	return &Repository{
		messenger:   messenger,
		clock:       clock,
		syncTimeout: syncTimeout,
	}
}

// RequestSync asks every reachable peer for a fresh snapshot. The response
// arrives asynchronously via HandleData. If no peer is reachable, the
// syncing flag is cleared and nothing else changes.
func (r *Repository) RequestSync(ctx context.Context) {
	nodes := r.messenger.ReachableNodes(ctx)
	if len(nodes) == 0 {
		r.setSyncing(false)
		log.Debug("No reachable peers to request a sync from")
		return
	}

	r.setSyncing(true)
	for _, node := range nodes {
		if err := r.messenger.Send(ctx, node, wire.SyncRequest, nil); err != nil {
			log.WithError(err).WithField("peer", node.ID).Warn(
				"Failed to send sync request")
		}
	}
}

// HandleData processes data items pushed by peers. It's registered as the
// channel server's data callback.
func (r *Repository) HandleData(sender, path string, payload []byte) {
	if path != wire.SyncResponse {
		log.WithField("path", path).Debug("Ignoring unknown data item")
		return
	}

	parsed, err := snapshot.Unmarshal(payload)
	if err != nil {
		// Discard the message and leave the prior snapshot untouched. The
		// next sync request will fetch a fresh copy.
		log.WithError(err).WithField("peer", sender).Warn(
			"Discarding malformed snapshot")
		r.setSyncing(false)
		return
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.snapshot = parsed
	r.lastSyncTime = parsed.LastSyncTime
	r.syncing = false

	log.WithFields(log.Fields{
		"peer":  sender,
		"items": len(parsed.ShoppingItems),
	}).Info("Applied sync snapshot")
}

// HandleMessage processes transient messages pushed by peers. It's registered
// as the channel server's message callback.
func (r *Repository) HandleMessage(sender, path string, payload []byte) {
	switch path {
	case wire.RefreshRequired:
		// The peer's state changed. Pull the canonical copy.
		r.RequestSync(context.Background())
	default:
		log.WithField("path", path).Debug("Ignoring unknown message")
	}
}

// ToggleItemChecked applies the new checked state to the local snapshot
// immediately, then reports it to the peers. If delivery to any reachable
// peer fails, or no peer is reachable, the local update is reverted so the
// watch doesn't display state the phone never saw.
//
// Toggling an id that isn't in the snapshot is a no-op.
func (r *Repository) ToggleItemChecked(ctx context.Context, id string, checked bool) {
	prior, ok := r.applyChecked(id, checked)
	if !ok {
		log.WithField("id", id).Debug("Ignoring toggle for unknown item")
		return
	}

	if err := r.sendToAll(ctx, wire.ToggleAction{ID: id, Checked: checked}); err != nil {
		log.WithError(err).WithField("id", id).Warn(
			"Failed to report toggle. Reverting local update.")
		r.applyChecked(id, prior)
	}
}

// AddItem reports a new shopping item to the peers. There's no optimistic
// local insert since the phone assigns the item's id: the item appears once
// a subsequent snapshot includes it, so a successful send immediately
// triggers a sync.
func (r *Repository) AddItem(ctx context.Context, name string, quantity float64,
	unit string) {

	action := wire.AddAction{Name: name, Quantity: quantity, Unit: unit}
	if err := r.sendToAll(ctx, action); err != nil {
		log.WithError(err).WithField("name", name).Warn("Failed to report new item")
		return
	}
	r.RequestSync(ctx)
}

// Items returns a copy of the shopping items in display order.
func (r *Repository) Items() []snapshot.ShoppingItem {
	r.lock.Lock()
	items := r.snapshot.Copy().ShoppingItems
	r.lock.Unlock()

	snapshot.SortForDisplay(items)
	return items
}

// Snapshot returns a copy of the held snapshot.
func (r *Repository) Snapshot() snapshot.Snapshot {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.snapshot.Copy()
}

// LastSyncTime returns the timestamp embedded in the most recently applied
// snapshot.
func (r *Repository) LastSyncTime() time.Time {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.lastSyncTime
}

// Syncing reports whether a sync request is outstanding. A request with no
// response stops counting as outstanding once the sync timeout passes.
func (r *Repository) Syncing() bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.syncing && !r.clock.Now().Before(r.syncDeadline) {
		log.Debug("Sync request timed out without a response")
		r.syncing = false
	}
	return r.syncing
}

func (r *Repository) setSyncing(syncing bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.syncing = syncing
	if syncing {
		r.syncDeadline = r.clock.Now().Add(r.syncTimeout)
	}
}

// applyChecked sets the checked state of the item with the given id, and
// returns the state it had before. ok is false if the item isn't in the
// snapshot.
func (r *Repository) applyChecked(id string, checked bool) (prior bool, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for i, item := range r.snapshot.ShoppingItems {
		if item.ID != id {
			continue
		}

		// Copy before mutating so that the update never aliases a snapshot
		// a caller is holding.
		updated := r.snapshot.Copy()
		updated.ShoppingItems[i].Checked = checked
		r.snapshot = updated
		return item.Checked, true
	}
	return false, false
}

type action interface {
	Path() string
	Marshal() ([]byte, error)
}

// sendToAll delivers the action to every reachable peer. Any failure counts
// as total failure: partial delivery isn't reconciled, so the caller should
// revert whatever the action changed locally.
func (r *Repository) sendToAll(ctx context.Context, a action) error {
	payload, err := a.Marshal()
	if err != nil {
		return err
	}

	nodes := r.messenger.ReachableNodes(ctx)
	if len(nodes) == 0 {
		return errors.ErrNoPeers
	}

	for _, node := range nodes {
		if err := r.messenger.Send(ctx, node, a.Path(), payload); err != nil {
			return err
		}
	}
	return nil
}
