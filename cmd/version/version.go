package version

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pantrylink/pantrylink/cmd/util"
	"github.com/pantrylink/pantrylink/pkg/channel/client"
	"github.com/pantrylink/pantrylink/pkg/config"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/version"
)

// New creates a new `version` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the local version of PantryLink and that of each peer.",
		Run: func(_ *cobra.Command, args []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	fmt.Printf("local version: %s\n", version.Version)

	cfg, err := config.ParseDevice()
	if err != nil {
		return errors.WithContext(err, "parse device config")
	}

	messenger := client.New(cfg.DeviceID, util.PeerNodes(cfg.Peers))
	defer messenger.Close()

	ctx := context.Background()
	for _, node := range util.PeerNodes(cfg.Peers) {
		remoteVersion, err := messenger.Version(ctx, node)
		if err != nil {
			fmt.Printf("peer %s: unreachable\n", node.ID)
			continue
		}
		fmt.Printf("peer %s: %s\n", node.ID, remoteVersion)
	}
	return nil
}
