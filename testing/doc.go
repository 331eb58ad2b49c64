// Package testing provides test utilities for the groupwheel library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for store integration testing. It follows Go's
// convention of providing testing utilities in a dedicated package (similar
// to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - NewTestLogger: types.Logger writing through testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    gwtest "github.com/andysmith26/groupwheel-sub002/testing"
//	)
//
//	func TestMyStore(t *testing.T) {
//	    _, nc := gwtest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
