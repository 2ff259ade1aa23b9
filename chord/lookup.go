package chord

import "time"

// Successor resolves the first node whose key is >= id on the ring. It
// finds predecessor(id) and asks it for its own successor; if that peer
// has since died, it recomputes from a fresh predecessor(id) and tries
// again. It returns once some node in the arc actually answers, which is
// guaranteed as long as at least one responsive node remains, or returns
// self once this node has stopped.
func (n *Node) Successor(id ID) Addr {
	for {
		if !n.active.Load() {
			return n.self
		}
		p := n.PredecessorOf(id)
		addr, err := n.rpcYourSuccessor(p)
		if err == nil {
			return addr
		}
		time.Sleep(n.cfg.MaintenancePeriod)
	}
}

// PredecessorOf finds the node whose key immediately precedes id on the
// ring. If id already falls in this node's own (key, successorKey] arc,
// this node is the answer. Otherwise the request is forwarded to the
// closest preceding finger of id; if that peer is unreachable, forwarding
// retries from the closest preceding finger of the dead peer's own key,
// which self-heals as long as the finger table is not entirely dead.
func (n *Node) PredecessorOf(id ID) Addr {
	self := n.self
	succKey := n.successorKey()
	if Belongs(n.key, false, succKey, true, id) {
		return self
	}

	target := id
	for {
		candidate := n.closestPrecedingFinger(target)
		if candidate.Equal(self) {
			return self
		}
		addr, err := n.rpcFindPredecessor(candidate, id)
		if err == nil {
			return addr
		}
		target = n.hashOf(candidate)
	}
}

// closestPrecedingFinger scans the finger table from the highest index
// down and returns the first entry whose key lies strictly inside (key,
// id). If none qualifies, it returns self.
func (n *Node) closestPrecedingFinger(id ID) Addr {
	fingers := n.Fingers()
	for i := len(fingers) - 1; i >= 0; i-- {
		f := fingers[i]
		if f.IsZero() {
			continue
		}
		if Belongs(n.key, false, id, false, n.hashOf(f)) {
			return f
		}
	}
	return n.self
}
