package chord

import "time"

// runStabilize is the successor/predecessor repair loop. It ticks every
// MaintenancePeriod until Stop clears the active flag, and never lets an
// error escape the loop: this loop is its own recovery boundary.
func (n *Node) runStabilize() {
	defer n.loopsDone.Done()
	ticker := time.NewTicker(n.cfg.MaintenancePeriod)
	defer ticker.Stop()
	for n.active.Load() {
		<-ticker.C
		if !n.active.Load() {
			return
		}
		n.stabilizeOnce()
	}
}

// stabilizeOnce implements one iteration of §4.5.1:
//  1. ask fingers[0] for its predecessor.
//  2. if unreachable, the successor has failed: pull the next candidate
//     off the successor list and adopt it as fingers[0].
//  3. otherwise, if the returned predecessor's key lies strictly between
//     this node's key and its successor's key, adopt it as the new
//     successor and keep successors[0] consistent with fingers[0].
//  4. notify the (possibly just-updated) successor.
func (n *Node) stabilizeOnce() {
	succ := n.Fingers()[0]
	if succ.IsZero() {
		return
	}

	pred, havePred, err := n.rpcYourPredecessor(succ)
	if err != nil {
		next := n.nextSuccessor()
		n.mu.Lock()
		n.fingers[0] = next
		n.mu.Unlock()
		succ = next
	} else if havePred {
		succKey := n.hashOf(succ)
		predKey := n.hashOf(pred)
		if Belongs(n.key, false, succKey, false, predKey) {
			n.mu.Lock()
			n.fingers[0] = pred
			n.successors[0] = pred
			n.mu.Unlock()
			succ = pred
		}
	}

	if !succ.IsZero() {
		_ = n.rpcNotify(succ, n.self)
	}
}
