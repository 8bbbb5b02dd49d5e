// Package netutil provides network error classification for tesserad.
//
// Implements type-based error detection that works reliably across operating
// systems and Go versions, avoiding fragile string matching. Used by the
// membership layer and the RPC server to distinguish port conflicts and
// unreachable peers from other failures.
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError checks if an error indicates "address already in use"
// using proper error type checking rather than string matching. Used for
// bind failures during node startup.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError checks if an error indicates "connection refused".
// Used to give operators a useful hint when peer joining or the geth gateway
// probe fails because the target is simply not running.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}
