package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pantrylink/pantrylink/cmd/util"
	"github.com/pantrylink/pantrylink/pkg/config"
	"github.com/pantrylink/pantrylink/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout            io.Writer = os.Stdout
	parseDeviceConfig           = config.ParseDevice
	writeDeviceConfig           = config.WriteDevice
	promptYesOrNo               = util.PromptYesOrNo
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.Device
	var peerFlags []string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Setup the PantryLink device configuration",
		Run: func(_ *cobra.Command, _ []string) {
			if err := SetupConfig(cliOpts, peerFlags); err != nil {
				err = errors.NewFriendlyError("Failed to setup configuration:\n%s", err)
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.DeviceID, "device-id", "",
		"The name this device reports to its peers. Required.")
	cmd.Flags().StringVar(&cliOpts.ListenAddress, "listen-address", "",
		"The address the channel server binds to. "+
			fmt.Sprintf("Defaults to port %d on all interfaces.", config.DefaultPort))
	cmd.Flags().StringVar(&cliOpts.DatabasePath, "database-path", "",
		"The path to the grocery database. Only used by the phone daemon.")
	cmd.Flags().StringSliceVar(&peerFlags, "peer", nil,
		"A peer device to sync with, as `id=host:port`. May be repeated.")

	cmd.AddCommand(&cobra.Command{
		Use:   "get-device-id",
		Short: "Get the currently configured device id",
		Run: func(_ *cobra.Command, _ []string) {
			cfg, err := parseDeviceConfig()
			if err != nil {
				err = errors.WithContext(err, "read config")
				util.HandleFatalError(err)
			}

			fmt.Fprintln(stdout, cfg.DeviceID)
		},
	})

	return cmd
}

// SetupConfig writes the device config described by the given options,
// prompting before overwriting an existing config.
func SetupConfig(cliOpts config.Device, peerFlags []string) error {
	if cliOpts.DeviceID == "" {
		return errors.NewFriendlyError("--device-id is required. Peers use it " +
			"to tell this device's messages apart from each other's.")
	}

	peers, err := parsePeers(peerFlags)
	if err != nil {
		return err
	}
	cliOpts.Peers = peers

	if _, err := parseDeviceConfig(); err == nil {
		path, _ := config.GetDeviceConfigPath()
		shouldOverwrite, err := promptYesOrNo(fmt.Sprintf(
			"A device config already exists at %s. Overwrite it?", path))
		if err != nil {
			return errors.WithContext(err, "confirm overwrite")
		}
		if !shouldOverwrite {
			return nil
		}
	}

	if err := writeDeviceConfig(cliOpts); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := config.GetDeviceConfigPath()
	if err != nil {
		return errors.WithContext(err, "get config path")
	}

	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}

func parsePeers(peerFlags []string) ([]config.Peer, error) {
	var peers []config.Peer
	for _, flag := range peerFlags {
		parts := strings.SplitN(flag, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, errors.NewFriendlyError(
				"Malformed peer %q. Peers are specified as `id=host:port`.", flag)
		}
		peers = append(peers, config.Peer{ID: parts[0], Address: parts[1]})
	}
	return peers, nil
}
