package chord

// startMaintenance launches the three maintenance loops. It must only be
// called once, after the request handler is already serving, since
// Stabilize and SuccessorListMaintainer immediately start issuing RPCs
// that other nodes may reflect back onto this one.
func (n *Node) startMaintenance() {
	n.loopsDone.Add(3)
	go n.runStabilize()
	go n.runFixFingers()
	go n.runSuccessorListMaintainer()
}

// IsActive reports whether the node is currently serving requests and
// running its maintenance loops.
func (n *Node) IsActive() bool {
	return n.active.Load()
}
