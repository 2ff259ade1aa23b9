package chord

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Node is the routing state of a single Chord participant: its identity,
// predecessor pointer, finger table, successor list, and the set of files
// it currently owns. All mutable fields are guarded by mu; the accessor
// methods hold mu only long enough to copy a snapshot, which may be stale
// by the time it is used, so every algorithm re-verifies over RPC before
// committing a change.
type Node struct {
	cfg  Config
	self Addr
	key  ID

	mu          sync.Mutex
	predecessor Addr
	havePred    bool
	fingers     []Addr // length cfg.M
	successors  []Addr // length cfg.R+1, last slot a defined sentinel
	data        map[string]ID

	generator KeyGenerator

	listener   net.Listener
	active     atomic.Bool
	loopsDone  sync.WaitGroup
	acceptDone sync.WaitGroup

	logger zerolog.Logger
}

// NewNode allocates routing state for a node identified by addr, but does
// not yet place it on any ring: call Bootstrap or Join to do that.
func NewNode(cfg Config, addr Addr, gen KeyGenerator) *Node {
	if gen == nil {
		gen = NopGenerator{}
	}
	n := &Node{
		cfg:        cfg,
		self:       addr,
		key:        HashAddress(addr, cfg.M),
		fingers:    make([]Addr, cfg.M),
		successors: make([]Addr, cfg.R+1),
		data:       make(map[string]ID),
		generator:  gen,
		logger:     log.With().Str("node", addr.String()).Logger(),
	}
	return n
}

// Self returns the node's own address.
func (n *Node) Self() Addr { return n.self }

// Key returns the node's own identifier.
func (n *Node) Key() ID { return n.key }

// Keyspace returns the ring's total identifier count, 2^M.
func (n *Node) Keyspace() ID { return n.cfg.Keyspace() }

// Fingers returns a snapshot of the finger table. The result is a copy:
// mutating it does not affect routing state.
func (n *Node) Fingers() []Addr {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Addr, len(n.fingers))
	copy(out, n.fingers)
	return out
}

// Successors returns a snapshot of the successor list, including the
// sentinel slot at index R.
func (n *Node) Successors() []Addr {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Addr, len(n.successors))
	copy(out, n.successors)
	return out
}

// PredecessorAddr returns the current predecessor and whether one is
// known yet.
func (n *Node) PredecessorAddr() (Addr, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.predecessor, n.havePred
}

// Filenames returns the names of every file this node currently owns.
func (n *Node) Filenames() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.data))
	for name := range n.data {
		out = append(out, name)
	}
	return out
}

// hashOf is a convenience wrapper folding an address into this ring's
// identifier space.
func (n *Node) hashOf(addr Addr) ID {
	return HashAddress(addr, n.cfg.M)
}

// successorKey returns the hash of the current fingers[0], the node's
// live successor.
func (n *Node) successorKey() ID {
	return n.hashOf(n.Fingers()[0])
}

// isAlive probes addr with the Alive command.
func (n *Node) isAlive(addr Addr) bool {
	if addr.IsZero() {
		return false
	}
	return n.rpcAlive(addr) == nil
}
