package errors

import (
	"github.com/pantrylink/pantrylink/pkg/proto/wearable"
)

// Marshal converts an error into the protobuf format so that it can be sent
// in an RPC response body. Sending errors in the body rather than at the
// transport level lets clients distinguish application errors from delivery
// failures.
func Marshal(err error) *wearable.Error {
	if err == nil {
		return nil
	}
	return &wearable.Error{Msg: err.Error()}
}

// Unmarshal combines the transport error and the application error from an
// RPC exchange into a single error. The transport error takes precedence
// since a failed exchange has no meaningful body.
func Unmarshal(rpcErr error, pbErr *wearable.Error) error {
	if rpcErr != nil {
		return WithContext(rpcErr, "rpc")
	}
	if pbErr.GetMsg() != "" {
		return New(pbErr.GetMsg())
	}
	return nil
}
