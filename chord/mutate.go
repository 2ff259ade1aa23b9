package chord

// ChangeSuccessor atomically assigns fingers[0]. Callers are trusted to
// have already validated the change; this is a pure setter.
func (n *Node) ChangeSuccessor(addr Addr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fingers[0] = addr
}

// ChangePredecessor atomically assigns the predecessor pointer. Callers
// are trusted to have already validated the change; this is a pure
// setter.
func (n *Node) ChangePredecessor(addr Addr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.predecessor = addr
	n.havePred = true
}

// Notify is invoked by a node that believes it may be this node's
// predecessor. If the current predecessor is unreachable, candidate is
// adopted unconditionally - this is what lets the ring recover when a
// predecessor vanishes. Otherwise candidate is adopted only if its key
// lies strictly between the current predecessor's key and this node's
// own key.
func (n *Node) Notify(candidate Addr) {
	n.mu.Lock()
	pred, havePred := n.predecessor, n.havePred
	n.mu.Unlock()

	if !havePred || !n.isAlive(pred) {
		n.mu.Lock()
		n.predecessor = candidate
		n.havePred = true
		n.mu.Unlock()
		return
	}

	candKey := n.hashOf(candidate)
	predKey := n.hashOf(pred)
	if Belongs(predKey, false, n.key, false, candKey) {
		n.mu.Lock()
		n.predecessor = candidate
		n.havePred = true
		n.mu.Unlock()
	}
}

// UpdateIthFinger is the inductive step of join advertisement. If
// candidate's key lies strictly between this node's key and the current
// fingers[i], it is a better i-th finger: accept it and forward the same
// update to this node's predecessor, since that node's i-th finger may
// need the same correction. Otherwise propagation stops here.
func (n *Node) UpdateIthFinger(i int, candidate Addr) {
	n.mu.Lock()
	if i < 0 || i >= len(n.fingers) {
		n.mu.Unlock()
		return
	}
	fingerKey := n.hashOf(n.fingers[i])
	candKey := n.hashOf(candidate)
	accept := Belongs(n.key, false, fingerKey, false, candKey)
	if accept {
		n.fingers[i] = candidate
	}
	pred, havePred := n.predecessor, n.havePred
	n.mu.Unlock()

	if accept && havePred && !pred.Equal(n.self) {
		// Best-effort: propagation is an optimization, not a
		// correctness requirement, since FixFingers will eventually
		// repair any finger it misses.
		_ = n.rpcUpdateIthFinger(pred, i, candidate)
	}
}
