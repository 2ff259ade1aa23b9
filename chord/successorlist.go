package chord

import (
	"math/rand"
	"time"
)

// initSuccessorList fills successors[0..R) by walking R hops forward from
// self, asking each hop for its own successor in turn. Index R is left as
// a defined sentinel (self) rather than an out-of-bounds slot, resolving
// the ambiguity the reference implementation left in shiftSuccessors.
func (n *Node) initSuccessorList() {
	cur := n.Fingers()[0]
	n.mu.Lock()
	n.successors[0] = cur
	n.mu.Unlock()

	for i := 1; i < n.cfg.R; i++ {
		next, err := n.rpcYourSuccessor(cur)
		if err != nil {
			break
		}
		n.mu.Lock()
		n.successors[i] = next
		n.mu.Unlock()
		cur = next
	}
	n.mu.Lock()
	n.successors[n.cfg.R] = n.self
	n.mu.Unlock()
}

// runSuccessorListMaintainer is the backup-successor repair loop.
func (n *Node) runSuccessorListMaintainer() {
	defer n.loopsDone.Done()
	ticker := time.NewTicker(n.cfg.MaintenancePeriod)
	defer ticker.Stop()
	for n.active.Load() {
		<-ticker.C
		if !n.active.Load() {
			return
		}
		n.successorListMaintainOnce()
	}
}

// successorListMaintainOnce implements §4.5.3: pick a random index in
// [0, R), ask that successor for its own successor, and either advance
// the next slot or, on failure at a non-head index, close the list up.
// A failure at index 0 is left for Stabilize, which owns the head.
func (n *Node) successorListMaintainOnce() {
	r := n.cfg.R
	if r == 0 {
		return
	}
	i := rand.Intn(r)

	n.mu.Lock()
	s := n.successors[i]
	n.mu.Unlock()
	if s.IsZero() {
		return
	}

	next, err := n.rpcYourSuccessor(s)
	if err == nil {
		n.mu.Lock()
		n.successors[i+1] = next
		n.mu.Unlock()
		return
	}

	if i != 0 {
		n.shiftSuccessors(i)
	}
}

// shiftSuccessors closes up the list from index i: for j from i to R-1,
// successors[j] = successors[j+1]. The final slot is refilled with self
// so the shift's last read always has a defined value.
func (n *Node) shiftSuccessors(i int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for j := i; j < n.cfg.R; j++ {
		n.successors[j] = n.successors[j+1]
	}
	n.successors[n.cfg.R] = n.self
}

// nextSuccessor is the hook Stabilize calls when the current head has
// failed: it shifts the list and returns the new head.
func (n *Node) nextSuccessor() Addr {
	n.shiftSuccessors(0)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.successors[0]
}
