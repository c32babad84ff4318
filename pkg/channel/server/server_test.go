package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrylink/pantrylink/pkg/channel"
	"github.com/pantrylink/pantrylink/pkg/channel/client"
	"github.com/pantrylink/pantrylink/pkg/channel/server"
)

type delivery struct {
	sender  string
	path    string
	payload []byte
}

// startServer runs a channel server on a random local port and returns the
// node to reach it at, plus channels the handlers deliver into.
func startServer(t *testing.T) (channel.Node, chan delivery, chan delivery) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lis.Close() })

	messages := make(chan delivery, 16)
	data := make(chan delivery, 16)
	go server.Run(lis, server.Config{
		OnMessage: func(sender, path string, payload []byte) {
			messages <- delivery{sender, path, payload}
		},
		OnData: func(sender, path string, payload []byte) {
			data <- delivery{sender, path, payload}
		},
	})

	return channel.Node{ID: "phone", Addr: lis.Addr().String()}, messages, data
}

func receive(t *testing.T, deliveries chan delivery) delivery {
	select {
	case d := <-deliveries:
		return d
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return delivery{}
	}
}

func TestSendRoundTrip(t *testing.T) {
	node, messages, _ := startServer(t)
	messenger := client.New("watch", []channel.Node{node})
	defer messenger.Close()

	err := messenger.Send(context.Background(), node, "item_checked",
		[]byte(`{"id": "a"}`))
	require.NoError(t, err)

	got := receive(t, messages)
	assert.Equal(t, "watch", got.sender)
	assert.Equal(t, "item_checked", got.path)
	assert.JSONEq(t, `{"id": "a"}`, string(got.payload))
}

func TestPutDataRoundTrip(t *testing.T) {
	node, _, data := startServer(t)
	messenger := client.New("phone", []channel.Node{node})
	defer messenger.Close()

	err := messenger.PutData(context.Background(), node, "sync_response",
		[]byte(`{"shoppingItems": []}`))
	require.NoError(t, err)

	got := receive(t, data)
	assert.Equal(t, "phone", got.sender)
	assert.Equal(t, "sync_response", got.path)
}

func TestVersionProbe(t *testing.T) {
	node, _, _ := startServer(t)
	messenger := client.New("watch", []channel.Node{node})
	defer messenger.Close()

	remoteVersion, err := messenger.Version(context.Background(), node)
	require.NoError(t, err)
	assert.NotEmpty(t, remoteVersion)
}

func TestReachableNodes(t *testing.T) {
	liveNode, _, _ := startServer(t)
	deadNode := channel.Node{ID: "tablet", Addr: "127.0.0.1:1"}

	messenger := client.New("watch", []channel.Node{liveNode, deadNode})
	defer messenger.Close()

	reachable := messenger.ReachableNodes(context.Background())
	assert.Equal(t, []channel.Node{liveNode}, reachable)
}

func TestSendToUnreachablePeerFails(t *testing.T) {
	deadNode := channel.Node{ID: "tablet", Addr: "127.0.0.1:1"}
	messenger := client.New("watch", []channel.Node{deadNode})
	defer messenger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := messenger.Send(ctx, deadNode, "item_checked", []byte("{}"))
	assert.Error(t, err)
}
