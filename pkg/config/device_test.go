package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/pantrylink/pantrylink/pkg/errors"
)

func TestParseDevice(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		return "/home/user/.pantrylink.yaml", nil
	}

	configContents := `
deviceId: kitchen-watch
listenAddress: 0.0.0.0:9040
peers:
  - id: pixel-phone
    address: 192.168.1.20:9040
syncTimeoutSeconds: 10
`
	err := afero.WriteFile(fs, "/home/user/.pantrylink.yaml",
		[]byte(configContents), 0644)
	assert.NoError(t, err)

	cfg, err := ParseDevice()
	assert.NoError(t, err)
	assert.Equal(t, "kitchen-watch", cfg.DeviceID)
	assert.Equal(t, "0.0.0.0:9040", cfg.ListenAddress)
	assert.Equal(t, []Peer{{ID: "pixel-phone", Address: "192.168.1.20:9040"}},
		cfg.Peers)
	assert.Equal(t, 10*time.Second, cfg.SyncTimeout())
}

func TestParseDeviceRelativeDatabasePath(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		if path == "~/.pantrylink.yaml" {
			return "/home/user/.pantrylink.yaml", nil
		}
		return path, nil
	}

	configContents := `
deviceId: pixel-phone
databasePath: pantrylink.db
`
	err := afero.WriteFile(fs, "/home/user/.pantrylink.yaml",
		[]byte(configContents), 0644)
	assert.NoError(t, err)

	cfg, err := ParseDevice()
	assert.NoError(t, err)
	assert.Equal(t, "/home/user/pantrylink.db", cfg.DatabasePath)
}

func TestParseDeviceMissingFile(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		return "/home/user/.pantrylink.yaml", nil
	}

	_, err := ParseDevice()
	assert.Error(t, err)
	_, friendly := err.(errors.FriendlyError)
	assert.True(t, friendly)
}

func TestParseDeviceMissingDeviceID(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		return "/home/user/.pantrylink.yaml", nil
	}

	err := afero.WriteFile(fs, "/home/user/.pantrylink.yaml",
		[]byte("listenAddress: :9040\n"), 0644)
	assert.NoError(t, err)

	_, err = ParseDevice()
	assert.Equal(t, errors.MissingFieldError{Field: "deviceId"}, err)
}

func TestParseDeviceBadVersion(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		return "/home/user/.pantrylink.yaml", nil
	}

	configContents := `
version: v9
deviceId: kitchen-watch
`
	err := afero.WriteFile(fs, "/home/user/.pantrylink.yaml",
		[]byte(configContents), 0644)
	assert.NoError(t, err)

	_, err = ParseDevice()
	assert.Error(t, err)
}

func TestParseDeviceUnknownField(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		return "/home/user/.pantrylink.yaml", nil
	}

	configContents := `
deviceId: kitchen-watch
notAField: true
`
	err := afero.WriteFile(fs, "/home/user/.pantrylink.yaml",
		[]byte(configContents), 0644)
	assert.NoError(t, err)

	_, err = ParseDevice()
	assert.Error(t, err)
}

func TestWriteDeviceRoundTrip(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		return "/home/user/.pantrylink.yaml", nil
	}

	cfg := Device{
		DeviceID:      "pixel-phone",
		ListenAddress: ":9040",
		Peers:         []Peer{{ID: "kitchen-watch", Address: "192.168.1.30:9040"}},
	}
	assert.NoError(t, WriteDevice(cfg))

	parsed, err := ParseDevice()
	assert.NoError(t, err)
	assert.Equal(t, cfg.DeviceID, parsed.DeviceID)
	assert.Equal(t, cfg.Peers, parsed.Peers)
	assert.Equal(t, SupportedDeviceConfigVersion, parsed.Version)
}

func TestDefaults(t *testing.T) {
	cfg := Device{}
	assert.Equal(t, DefaultSyncTimeoutSeconds*time.Second, cfg.SyncTimeout())
	assert.Equal(t, time.Duration(DefaultExpiringWindowDays)*24*time.Hour,
		cfg.ExpiringWindow())
}
