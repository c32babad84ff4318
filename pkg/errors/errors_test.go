package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantrylink/pantrylink/pkg/proto/wearable"
)

func TestWithContext(t *testing.T) {
	root := New("connection refused")
	wrapped := WithContext(WithContext(root, "dial"), "send sync request")

	assert.Equal(t, "send sync request: dial: connection refused", wrapped.Error())
	assert.Equal(t, root, RootCause(wrapped))
}

func TestRootCauseUnwrapped(t *testing.T) {
	err := New("plain")
	assert.Equal(t, err, RootCause(err))
}

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		rpcErr error
		err    error
		exp    string
	}{
		{
			name: "NoError",
		},
		{
			name: "ApplicationError",
			err:  New("event queue is full"),
			exp:  "event queue is full",
		},
		{
			name:   "TransportError",
			rpcErr: New("connection refused"),
			err:    New("ignored"),
			exp:    "rpc: connection refused",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			combined := Unmarshal(test.rpcErr, Marshal(test.err))
			if test.exp == "" {
				assert.NoError(t, combined)
				return
			}
			assert.EqualError(t, combined, test.exp)
		})
	}
}

func TestUnmarshalNilResponse(t *testing.T) {
	// A transport failure means there's no response body to read an error
	// from, so Unmarshal has to cope with a nil protobuf.
	var pbErr *wearable.Error
	assert.NoError(t, Unmarshal(nil, pbErr))
	assert.EqualError(t, Unmarshal(New("eof"), pbErr), "rpc: eof")
}
