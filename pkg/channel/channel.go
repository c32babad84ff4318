package channel

import (
	"context"
)

// A Node is a peer PantryLink device reachable over the device-to-device
// channel.
type Node struct {
	// ID is the peer's device ID.
	ID string

	// Addr is the address the peer's channel server listens on.
	Addr string
}

// Messenger is the client side of the device-to-device channel. Delivery is
// at-most-once: a nil error means the peer accepted the message, but a
// non-nil error doesn't guarantee the peer didn't see it.
type Messenger interface {
	// ReachableNodes returns the configured peers that currently respond to
	// a reachability probe. Each peer is probed independently.
	ReachableNodes(ctx context.Context) []Node

	// Send delivers a transient message to the peer.
	Send(ctx context.Context, node Node, path string, payload []byte) error

	// PutData replaces the data item at `path` on the peer. Used for
	// payloads that carry full state rather than discrete events.
	PutData(ctx context.Context, node Node, path string, payload []byte) error

	// Version returns the PantryLink version the peer is running.
	Version(ctx context.Context, node Node) (string, error)

	Close() error
}
