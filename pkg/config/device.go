package config

import (
	"path/filepath"
	"time"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/pantrylink/pantrylink/pkg/errors"
)

const (
	// DeviceConfigPath is the default path to the PantryLink device config.
	DeviceConfigPath = "~/.pantrylink.yaml"

	// InitialDeviceConfigVersion is the first version of the PantryLink
	// device config. Config files that do not specify a version will default
	// to this version.
	InitialDeviceConfigVersion = "v1alpha1"

	// SupportedDeviceConfigVersion is the supported version of the PantryLink
	// device config of the current PantryLink binary.
	SupportedDeviceConfigVersion = "v1alpha1"

	// DefaultPort is the default port the device-to-device channel server
	// listens on.
	DefaultPort = 9040

	// DefaultSyncTimeoutSeconds is how long the watch waits for a sync
	// response before it stops reporting that a sync is in progress.
	DefaultSyncTimeoutSeconds = 30

	// DefaultExpiringWindowDays is how far ahead the phone looks for pantry
	// items approaching expiration when it builds a snapshot.
	DefaultExpiringWindowDays = 7
)

// Peer identifies another PantryLink device reachable over the
// device-to-device channel.
type Peer struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// Device contains the configuration for a single PantryLink device.
type Device struct {
	Version string `json:"version,omitempty"`

	// DeviceID identifies this device to its peers.
	DeviceID string `json:"deviceId"`

	// ListenAddress is the address the channel server binds to.
	ListenAddress string `json:"listenAddress,omitempty"`

	// Peers are the devices this device syncs with.
	Peers []Peer `json:"peers,omitempty"`

	// DatabasePath is the path to the authoritative sqlite store. Only used
	// by the phone daemon.
	DatabasePath string `json:"databasePath,omitempty"`

	SyncTimeoutSeconds int `json:"syncTimeoutSeconds,omitempty"`
	ExpiringWindowDays int `json:"expiringWindowDays,omitempty"`
}

func (d Device) getVersion() string {
	return d.Version
}

// SyncTimeout returns the configured sync timeout as a duration.
func (d Device) SyncTimeout() time.Duration {
	seconds := d.SyncTimeoutSeconds
	if seconds == 0 {
		seconds = DefaultSyncTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// ExpiringWindow returns the configured expiration lookahead as a duration.
func (d Device) ExpiringWindow() time.Duration {
	days := d.ExpiringWindowDays
	if days == 0 {
		days = DefaultExpiringWindowDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// ParseDevice attempts to parse the Device config stored in the default path.
func ParseDevice() (Device, error) {
	path, err := GetDeviceConfigPath()
	if err != nil {
		return Device{}, errors.WithContext(err, "expand config path")
	}

	config := Device{Version: InitialDeviceConfigVersion}
	if err := parseConfig(path, &config, SupportedDeviceConfigVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return Device{}, errors.NewFriendlyError("The PantryLink device "+
				"config file doesn't exist at %q. Please run `pantrylink config` "+
				"to create it.", path)
		}
		return Device{}, errors.WithContext(err, "parse")
	}

	if config.DeviceID == "" {
		return Device{}, errors.MissingFieldError{Field: "deviceId"}
	}

	config.DatabasePath, err = homedirExpand(config.DatabasePath)
	if err != nil {
		return Device{}, errors.WithContext(err, "expand database path")
	}

	// Evaluate relative paths relative to the config path.
	if config.DatabasePath != "" && !filepath.IsAbs(config.DatabasePath) {
		config.DatabasePath = filepath.Join(filepath.Dir(path), config.DatabasePath)
	}
	return config, nil
}

// WriteDevice writes the given device config to disk.
func WriteDevice(cfg Device) error {
	cfg.Version = SupportedDeviceConfigVersion
	path, err := GetDeviceConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetDeviceConfigPath gets the path to the device's PantryLink configuration.
// This path is expanded, so it can be directly passed to file operations.
func GetDeviceConfigPath() (string, error) {
	return homedirExpand(DeviceConfigPath)
}
