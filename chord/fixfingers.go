package chord

import (
	"math/rand"
	"time"
)

// runFixFingers is the finger-table repair loop. Index 0 is deliberately
// never touched here; Stabilize owns it exclusively.
func (n *Node) runFixFingers() {
	defer n.loopsDone.Done()
	ticker := time.NewTicker(n.cfg.MaintenancePeriod)
	defer ticker.Stop()
	for n.active.Load() {
		<-ticker.C
		if !n.active.Load() {
			return
		}
		n.fixFingersOnce()
	}
}

// fixFingersOnce picks a uniformly random index in [1, M), resolves the
// successor of key+2^i, and assigns it under the mutex.
func (n *Node) fixFingersOnce() {
	m := int(n.cfg.M)
	if m < 2 {
		return
	}
	i := 1 + rand.Intn(m-1)
	target := addMod(n.key, pow2(uint(i)), n.Keyspace())
	addr := n.Successor(target)

	n.mu.Lock()
	n.fingers[i] = addr
	n.mu.Unlock()
}
