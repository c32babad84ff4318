package phone

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/pantrylink/pantrylink/cmd/util"
	"github.com/pantrylink/pantrylink/pkg/channel/client"
	"github.com/pantrylink/pantrylink/pkg/channel/server"
	"github.com/pantrylink/pantrylink/pkg/config"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/phone"
)

// New creates a new `phone` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "phone",
		Short: "Run the phone daemon that owns the grocery data.",
		Long: "Run the daemon that holds the authoritative grocery data and\n" +
			"answers sync requests from paired watches.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	cfg, err := config.ParseDevice()
	if err != nil {
		return errors.WithContext(err, "parse device config")
	}

	if cfg.DatabasePath == "" {
		return errors.NewFriendlyError("The device config doesn't set "+
			"`databasePath`. The phone daemon needs a database to store the "+
			"grocery data in. Please add it to %s.", config.DeviceConfigPath)
	}

	store, err := phone.OpenStore(cfg.DatabasePath)
	if err != nil {
		return errors.WithContext(err, "open store")
	}
	defer store.Close()

	messenger := client.New(cfg.DeviceID, util.PeerNodes(cfg.Peers))
	defer messenger.Close()

	responder := phone.NewResponder(store, messenger, cfg.ExpiringWindow())

	listenAddress := cfg.ListenAddress
	if listenAddress == "" {
		listenAddress = fmt.Sprintf(":%d", config.DefaultPort)
	}
	lis, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return errors.WithContext(err, "listen")
	}

	// Let watches that missed updates while we were down catch up, and flag
	// any peers running newer releases than us.
	go func() {
		defer util.HandlePanic()
		util.WarnOnVersionSkew(context.Background(), messenger)
		responder.AnnounceRefresh(context.Background())
	}()

	return server.Run(lis, server.Config{
		OnMessage: responder.HandleMessage,
		OnData:    responder.HandleData,
	})
}
