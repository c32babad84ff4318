package client

import (
	"context"
	gosync "sync"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding/gzip"

	"github.com/pantrylink/pantrylink/pkg/channel"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/proto/wearable"
)

// probeTimeout bounds the reachability probe for a single peer. Peers that
// don't respond within this window are treated as unreachable for the
// current operation, and probed again on the next one.
const probeTimeout = 3 * time.Second

const rpcTimeout = 30 * time.Second

type client struct {
	self  string
	peers []channel.Node

	connsLock gosync.Mutex
	conns     map[string]*grpc.ClientConn
}

// New returns a Messenger that reaches the given peers over gRPC. `self` is
// the local device ID, attached to every outgoing message so peers know the
// sender.
func New(self string, peers []channel.Node) channel.Messenger {
	return &client{
		self:  self,
		peers: peers,
		conns: map[string]*grpc.ClientConn{},
	}
}

// conn returns the cached connection to the node, dialing if necessary.
// gRPC connections reconnect transparently, so a cached connection to a peer
// that has gone away fails at call time rather than dial time.
func (c *client) conn(node channel.Node) (*grpc.ClientConn, error) {
	c.connsLock.Lock()
	defer c.connsLock.Unlock()

	if conn, ok := c.conns[node.ID]; ok {
		return conn, nil
	}

	conn, err := grpc.Dial(node.Addr, grpc.WithInsecure(),
		grpc.WithDefaultCallOptions(grpc.UseCompressor(gzip.Name)))
	if err != nil {
		return nil, errors.WithContext(err, "dial")
	}
	c.conns[node.ID] = conn
	return conn, nil
}

func (c *client) ReachableNodes(ctx context.Context) (reachable []channel.Node) {
	for _, node := range c.peers {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		_, err := c.version(probeCtx, node)
		cancel()

		if err != nil {
			log.WithError(err).WithField("peer", node.ID).Debug(
				"Peer is unreachable")
			continue
		}
		reachable = append(reachable, node)
	}
	return reachable
}

func (c *client) Send(ctx context.Context, node channel.Node, path string,
	payload []byte) error {

	conn, err := c.conn(node)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	resp, err := wearable.NewWearableClient(conn).SendMessage(ctx,
		&wearable.SendMessageRequest{
			Sender:  c.self,
			Path:    path,
			Payload: payload,
		})
	return errors.Unmarshal(err, resp.GetError())
}

func (c *client) PutData(ctx context.Context, node channel.Node, path string,
	payload []byte) error {

	conn, err := c.conn(node)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	resp, err := wearable.NewWearableClient(conn).PutDataItem(ctx,
		&wearable.PutDataItemRequest{
			Sender:  c.self,
			Path:    path,
			Payload: payload,
		})
	return errors.Unmarshal(err, resp.GetError())
}

func (c *client) Version(ctx context.Context, node channel.Node) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	return c.version(ctx, node)
}

func (c *client) version(ctx context.Context, node channel.Node) (string, error) {
	conn, err := c.conn(node)
	if err != nil {
		return "", err
	}

	resp, err := wearable.NewWearableClient(conn).GetVersion(ctx,
		&wearable.GetVersionRequest{})
	if err = errors.Unmarshal(err, resp.GetError()); err != nil {
		return "", err
	}
	return resp.GetVersion(), nil
}

func (c *client) Close() error {
	c.connsLock.Lock()
	defer c.connsLock.Unlock()

	var firstErr error
	for id, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.conns, id)
	}
	return firstErr
}
