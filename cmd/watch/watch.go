package watch

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrylink/pantrylink/cmd/util"
	"github.com/pantrylink/pantrylink/pkg/channel/client"
	"github.com/pantrylink/pantrylink/pkg/channel/server"
	"github.com/pantrylink/pantrylink/pkg/config"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/watch"
)

// New creates a new `watch` command.
func New() *cobra.Command {
	var syncInterval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the watch daemon that mirrors the phone's grocery data.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(syncInterval); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().DurationVar(&syncInterval, "sync-interval", 5*time.Minute,
		"How often to refresh the snapshot from the phone, in addition to "+
			"refreshes the phone pushes itself.")
	return cmd
}

func run(syncInterval time.Duration) error {
	cfg, err := config.ParseDevice()
	if err != nil {
		return errors.WithContext(err, "parse device config")
	}

	messenger := client.New(cfg.DeviceID, util.PeerNodes(cfg.Peers))
	defer messenger.Close()

	repository := watch.New(messenger, cfg.SyncTimeout())

	listenAddress := cfg.ListenAddress
	if listenAddress == "" {
		listenAddress = fmt.Sprintf(":%d", config.DefaultPort)
	}
	lis, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return errors.WithContext(err, "listen")
	}

	go func() {
		defer util.HandlePanic()
		util.WarnOnVersionSkew(context.Background(), messenger)
		repository.RequestSync(context.Background())

		// The phone pushes refresh notices on changes, so the ticker only
		// covers notices lost while this device was unreachable.
		for range time.Tick(syncInterval) {
			repository.RequestSync(context.Background())
		}
	}()

	return server.Run(lis, server.Config{
		OnMessage: repository.HandleMessage,
		OnData:    repository.HandleData,
	})
}
