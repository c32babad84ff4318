package util

import (
	"context"

	version "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"

	"github.com/pantrylink/pantrylink/pkg/channel"
	"github.com/pantrylink/pantrylink/pkg/config"
	localVersion "github.com/pantrylink/pantrylink/pkg/version"
)

// PeerNodes converts configured peers into channel nodes.
func PeerNodes(peers []config.Peer) []channel.Node {
	var nodes []channel.Node
	for _, peer := range peers {
		nodes = append(nodes, channel.Node{ID: peer.ID, Addr: peer.Address})
	}
	return nodes
}

// WarnOnVersionSkew compares the local version against each reachable peer,
// and warns when a peer is running a newer release. Newer peers may send
// snapshot fields and message paths this binary ignores.
func WarnOnVersionSkew(ctx context.Context, messenger channel.Messenger) {
	local, err := version.NewVersion(localVersion.Version)
	if err != nil {
		// Development builds don't carry a semantic version.
		log.WithField("version", localVersion.Version).Debug(
			"Skipping peer version check for non-release build")
		return
	}

	for _, node := range messenger.ReachableNodes(ctx) {
		remote, err := messenger.Version(ctx, node)
		if err != nil {
			log.WithError(err).WithField("peer", node.ID).Debug(
				"Failed to get peer version")
			continue
		}

		remoteVersion, err := version.NewVersion(remote)
		if err != nil {
			continue
		}

		if remoteVersion.GreaterThan(local) {
			log.WithFields(log.Fields{
				"peer":         node.ID,
				"peerVersion":  remote,
				"localVersion": localVersion.Version,
			}).Warn("Peer is running a newer version of PantryLink. " +
				"Some of its updates may be ignored until this device upgrades.")
		}
	}
}
