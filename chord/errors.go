package chord

import "golang.org/x/xerrors"

// Error taxonomy for the routing subsystem. These are sentinels, not
// concrete types: callers compare with xerrors.Is against a wrapped chain,
// since every RPC failure is annotated with a description of the step that
// failed.
var (
	// ErrUnreachable is returned by any RPC helper when a socket, I/O, or
	// response-parse failure occurred while talking to a peer. The caller
	// treats it as evidence the peer has failed.
	ErrUnreachable = xerrors.New("chord: peer unreachable")

	// ErrStopped is returned by Stop when the node was not active.
	ErrStopped = xerrors.New("chord: node has already been stopped")
)
