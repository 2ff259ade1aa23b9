package chord

import "golang.org/x/xerrors"

// Bootstrap starts the very first node of a new ring. It is its own
// predecessor and successor, every finger points at itself, and its
// initial file set comes from the configured KeyGenerator (a synthetic
// generator in tests, or a stub in production - populating real data is
// external glue the core does not implement).
func (n *Node) Bootstrap(port string) error {
	n.mu.Lock()
	n.predecessor = n.self
	n.havePred = true
	for i := range n.fingers {
		n.fingers[i] = n.self
	}
	for i := range n.successors {
		n.successors[i] = n.self
	}
	n.data = n.generator.Generate(n.self, n.cfg.M)
	n.mu.Unlock()

	if err := n.Serve(port); err != nil {
		return xerrors.Errorf("chord: bootstrap listen: %w", err)
	}
	n.startMaintenance()
	n.logger.Info().Uint64("key", n.key).Msg("chord: bootstrapped new ring")
	return nil
}

// Join places this node in an existing ring reachable through helper,
// following the sequence in §4.6: resolve a successor through the
// helper, adopt that successor's predecessor as a placeholder, notify
// the successor, start serving requests (before refining fingers, so the
// successor's stabilization probes don't see this node as dead),
// refine the finger table, announce the join to every node whose finger
// table may need updating, migrate the keys this node now owns, and
// finally start the maintenance loops.
func (n *Node) Join(port string, helper Addr) error {
	successor, err := n.rpcFindSuccessor(helper, n.key)
	if err != nil {
		return xerrors.Errorf("chord: join: resolve successor via %s: %w", helper, err)
	}

	n.mu.Lock()
	for i := range n.fingers {
		n.fingers[i] = successor
	}
	n.mu.Unlock()

	if pred, havePred, err := n.rpcYourPredecessor(successor); err == nil && havePred {
		n.mu.Lock()
		n.predecessor = pred
		n.havePred = true
		n.mu.Unlock()
	}

	_ = n.rpcNotify(successor, n.self)

	if err := n.Serve(port); err != nil {
		return xerrors.Errorf("chord: join listen: %w", err)
	}

	n.initFingerTable(helper, successor)
	n.announce()
	n.migrateKeys(successor)

	n.startMaintenance()
	n.logger.Info().Uint64("key", n.key).Str("via", helper.String()).Msg("chord: joined ring")
	return nil
}

// initFingerTable refines fingers[1..M) per the skip rule of §4.6 step 5:
// if the previous finger already covers [lastStart, thisStart), copy it
// forward without an RPC; otherwise resolve successor(thisStart) through
// the helper.
func (n *Node) initFingerTable(helper Addr, successor Addr) {
	keyspace := n.Keyspace()
	for i := 1; i < int(n.cfg.M); i++ {
		lastStart := addMod(n.key, pow2(uint(i-1)), keyspace)
		thisStart := addMod(n.key, pow2(uint(i)), keyspace)

		n.mu.Lock()
		lastFinger := n.fingers[i-1]
		n.mu.Unlock()

		lastFingerKey := n.hashOf(lastFinger)
		if !Belongs(lastStart, true, thisStart, false, lastFingerKey) {
			n.mu.Lock()
			n.fingers[i] = lastFinger
			n.mu.Unlock()
			continue
		}

		addr, err := n.rpcFindSuccessor(helper, thisStart)
		if err != nil {
			// The helper is unreachable at this point in the join;
			// fall back to the placeholder successor rather than
			// leaving the slot stale. FixFingers repairs it later.
			addr = successor
		}
		n.mu.Lock()
		n.fingers[i] = addr
		n.mu.Unlock()
	}
	n.initSuccessorList()
}

// announce notifies every node whose finger table might now need to
// point at this node. For each finger index i, requiredKey = key - 2^i
// is the point whose i-th finger a node just below it would want to be
// self. P = predecessor(requiredKey) is that node under the classic
// Chord formula; PS, P's own successor, is preferred as the actual
// target when it differs from P, since PS is the node bordering
// requiredKey most closely and thus the one whose finger[i] slot is
// being pushed forward by this join. P is the fallback when PS cannot be
// reached.
func (n *Node) announce() {
	keyspace := n.Keyspace()
	for i := 0; i < int(n.cfg.M); i++ {
		requiredKey := subMod(n.key, pow2(uint(i)), keyspace)
		p := n.PredecessorOf(requiredKey)

		target := p
		if ps, err := n.rpcYourSuccessor(p); err == nil && !ps.Equal(p) {
			target = ps
		}
		_ = n.rpcUpdateIthFinger(target, i, n.self)
	}
}

// migrateKeys asks the new successor to hand over every file this node
// now owns and inserts them locally.
func (n *Node) migrateKeys(successor Addr) {
	n.mu.Lock()
	predKey := n.predecessor
	n.mu.Unlock()

	predHash := n.hashOf(predKey)
	reply, err := n.rpcTransferKeys(successor, n.key, predHash)
	if err != nil || reply == "" {
		return
	}
	for _, name := range splitNonEmpty(reply, ':') {
		n.own(name)
	}
}

// transferKeysServer is the receiving side of TransferKeys: it removes
// and returns every filename this node owns whose hash falls in
// (second, first], where first is the caller's own key (the upper,
// inclusive bound) and second is the caller's predecessor's key (the
// lower, exclusive bound).
func (n *Node) transferKeysServer(first, second ID) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	var moved []string
	for name, fileKey := range n.data {
		if Belongs(second, false, first, true, fileKey) {
			moved = append(moved, name)
			delete(n.data, name)
		}
	}
	return joinNonEmpty(moved, ':')
}
