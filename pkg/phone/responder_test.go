package phone

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrylink/pantrylink/pkg/channel"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/snapshot"
	"github.com/pantrylink/pantrylink/pkg/wire"
)

type sentMessage struct {
	node    string
	path    string
	payload []byte
}

type fakeMessenger struct {
	nodes   []channel.Node
	sendErr error

	sent []sentMessage
	puts []sentMessage
}

func (m *fakeMessenger) ReachableNodes(_ context.Context) []channel.Node {
	return m.nodes
}

func (m *fakeMessenger) Send(_ context.Context, node channel.Node, path string,
	payload []byte) error {

	m.sent = append(m.sent, sentMessage{node: node.ID, path: path, payload: payload})
	return m.sendErr
}

func (m *fakeMessenger) PutData(_ context.Context, node channel.Node, path string,
	payload []byte) error {

	m.puts = append(m.puts, sentMessage{node: node.ID, path: path, payload: payload})
	return nil
}

func (m *fakeMessenger) Version(_ context.Context, _ channel.Node) (string, error) {
	return "test", nil
}

func (m *fakeMessenger) Close() error {
	return nil
}

var watchNode = channel.Node{ID: "watch", Addr: "watch:9040"}

var testNow = time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

func newTestResponder(t *testing.T, messenger channel.Messenger) (*Responder, *Store) {
	store := newTestStore(t)
	responder := NewResponderWithClock(store, messenger, 7*24*time.Hour,
		clockwork.NewFakeClockAt(testNow))
	return responder, store
}

func marshal(t *testing.T, action interface{ Marshal() ([]byte, error) }) []byte {
	payload, err := action.Marshal()
	require.NoError(t, err)
	return payload
}

func TestSyncRequestAnsweredWithSnapshot(t *testing.T) {
	messenger := &fakeMessenger{nodes: []channel.Node{watchNode}}
	responder, store := newTestResponder(t, messenger)
	require.NoError(t, store.InsertShoppingItem(context.Background(),
		snapshot.ShoppingItem{ID: "a", Name: "milk", Quantity: 1, Unit: "l"}))

	responder.HandleMessage("watch", wire.SyncRequest, nil)

	assert.Empty(t, messenger.sent)
	require.Len(t, messenger.puts, 1)
	assert.Equal(t, "watch", messenger.puts[0].node)
	assert.Equal(t, wire.SyncResponse, messenger.puts[0].path)

	snap, err := snapshot.Unmarshal(messenger.puts[0].payload)
	require.NoError(t, err)
	require.Len(t, snap.ShoppingItems, 1)
	assert.Equal(t, "milk", snap.ShoppingItems[0].Name)
	assert.Equal(t, testNow, snap.LastSyncTime)
	assert.NotEmpty(t, snap.QuickAddPresets)
}

func TestSyncRequestFromUnreachablePeerDropped(t *testing.T) {
	messenger := &fakeMessenger{}
	responder, _ := newTestResponder(t, messenger)

	responder.HandleMessage("watch", wire.SyncRequest, nil)

	assert.Empty(t, messenger.puts)
}

func TestToggleAppliedAndBroadcast(t *testing.T) {
	messenger := &fakeMessenger{nodes: []channel.Node{watchNode}}
	responder, store := newTestResponder(t, messenger)
	ctx := context.Background()
	require.NoError(t, store.InsertShoppingItem(ctx,
		snapshot.ShoppingItem{ID: "a", Name: "milk", Quantity: 1}))

	payload := marshal(t, wire.ToggleAction{ID: "a", Checked: true})
	responder.HandleMessage("watch", wire.ItemChecked, payload)

	listed, err := store.ListShoppingItems(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Checked)

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, wire.RefreshRequired, messenger.sent[0].path)
	require.Len(t, messenger.puts, 1)
	assert.Equal(t, wire.SyncResponse, messenger.puts[0].path)

	snap, err := snapshot.Unmarshal(messenger.puts[0].payload)
	require.NoError(t, err)
	item, ok := snap.Lookup("a")
	require.True(t, ok)
	assert.True(t, item.Checked)
}

func TestToggleUnknownItemIgnored(t *testing.T) {
	messenger := &fakeMessenger{nodes: []channel.Node{watchNode}}
	responder, store := newTestResponder(t, messenger)

	payload := marshal(t, wire.ToggleAction{ID: "missing", Checked: true})
	responder.HandleMessage("watch", wire.ItemUnchecked, payload)

	listed, err := store.ListShoppingItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Empty(t, messenger.sent)
	assert.Empty(t, messenger.puts)
}

func TestMalformedActionDropped(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "Toggle", path: wire.ItemChecked},
		{name: "Add", path: wire.ItemAdded},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			messenger := &fakeMessenger{nodes: []channel.Node{watchNode}}
			responder, store := newTestResponder(t, messenger)

			responder.HandleMessage("watch", test.path, []byte("garbage"))

			listed, err := store.ListShoppingItems(context.Background())
			require.NoError(t, err)
			assert.Empty(t, listed)
			assert.Empty(t, messenger.sent)
			assert.Empty(t, messenger.puts)
		})
	}
}

func TestAddInsertsAndBroadcasts(t *testing.T) {
	originalNewItemID := newItemID
	newItemID = func() string { return "generated-id" }
	defer func() { newItemID = originalNewItemID }()

	messenger := &fakeMessenger{nodes: []channel.Node{watchNode}}
	responder, store := newTestResponder(t, messenger)

	payload := marshal(t, wire.AddAction{Name: "eggs", Quantity: 12, Unit: "pcs"})
	responder.HandleMessage("watch", wire.ItemAdded, payload)

	listed, err := store.ListShoppingItems(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, snapshot.ShoppingItem{
		ID:       "generated-id",
		Name:     "eggs",
		Quantity: 12,
		Unit:     "pcs",
	}, listed[0])

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, wire.RefreshRequired, messenger.sent[0].path)
	require.Len(t, messenger.puts, 1)

	snap, err := snapshot.Unmarshal(messenger.puts[0].payload)
	require.NoError(t, err)
	_, ok := snap.Lookup("generated-id")
	assert.True(t, ok)
}

func TestUnhandledPathIgnored(t *testing.T) {
	messenger := &fakeMessenger{nodes: []channel.Node{watchNode}}
	responder, _ := newTestResponder(t, messenger)

	responder.HandleMessage("watch", "some_future_path", []byte("{}"))
	responder.HandleData("watch", wire.SyncResponse, []byte("{}"))

	assert.Empty(t, messenger.sent)
	assert.Empty(t, messenger.puts)
}

func TestAnnounceRefreshIsBestEffort(t *testing.T) {
	messenger := &fakeMessenger{
		nodes:   []channel.Node{watchNode, {ID: "tablet", Addr: "tablet:9040"}},
		sendErr: errors.New("send failed"),
	}
	responder, _ := newTestResponder(t, messenger)

	responder.AnnounceRefresh(context.Background())

	// The refresh notice failing doesn't stop the snapshot push.
	assert.Len(t, messenger.sent, 2)
	assert.Len(t, messenger.puts, 2)
}

func TestBuildSnapshotListName(t *testing.T) {
	responder, store := newTestResponder(t, &fakeMessenger{})
	ctx := context.Background()
	require.NoError(t, store.SetActiveListName(ctx, "Weekly Groceries"))

	snap, err := responder.BuildSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Groceries", snap.ListName)
	assert.Equal(t, testNow, snap.LastSyncTime)
}
