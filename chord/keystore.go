package chord

// KeyGenerator is the hook the join orchestrator uses to seed a bootstrap
// node's initial file set. Populating storage from a real corpus, or from
// the random-file generator used in local testing, is external glue the
// core does not implement; it only needs a source of filenames to hash and
// own. The core treats every stored value as an opaque string keyed by its
// hash, so a generator need only produce names.
type KeyGenerator interface {
	// Generate returns the set of filenames a freshly bootstrapped node
	// (the very first node in a ring) should start out owning, together
	// with their precomputed hash so the node need not rehash on every
	// lookup.
	Generate(self Addr, m uint) map[string]ID
}

// NopGenerator seeds no files at all. It is the default when a node is
// constructed without an explicit generator, appropriate for a joiner
// (which always receives its files via TransferKeys, never via
// generation) and for tests that don't care about initial data.
type NopGenerator struct{}

// Generate implements KeyGenerator.
func (NopGenerator) Generate(Addr, uint) map[string]ID {
	return map[string]ID{}
}

// StaticGenerator seeds a fixed, caller-supplied list of filenames. It
// exists for reproducible local testing and demonstrations, standing in
// for a real random-file generator.
type StaticGenerator struct {
	Filenames []string
}

// Generate implements KeyGenerator.
func (g StaticGenerator) Generate(_ Addr, m uint) map[string]ID {
	out := make(map[string]ID, len(g.Filenames))
	for _, name := range g.Filenames {
		out[name] = HashFilename(name, m)
	}
	return out
}

// own records that this node now owns filename, hashing it with the
// ring's configured bit-width.
func (n *Node) own(filename string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.data[filename] = HashFilename(filename, n.cfg.M)
}

// belongsHere reports whether fileKey currently falls in this node's
// ownership range (predecessor.key, key], the eventual invariant on data.
func (n *Node) belongsHere(fileKey ID) bool {
	n.mu.Lock()
	pred, havePred := n.predecessor, n.havePred
	key := n.key
	n.mu.Unlock()
	if !havePred {
		return false
	}
	return Belongs(n.hashOf(pred), false, key, true, fileKey)
}
