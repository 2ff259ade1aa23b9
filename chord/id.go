package chord

import (
	"crypto/sha1"
	"math/big"
)

// ID is a point in the circular identifier space [0, KEYSPACE).
type ID = uint64

// pow2 returns 2^i as an ID. Callers are expected to reduce the result
// modulo the ring's keyspace themselves; pow2 never wraps on its own since
// i is always small (< 64) for any M this package supports.
func pow2(i uint) ID {
	return ID(1) << i
}

// addMod adds step to base and wraps it into [0, mod).
func addMod(base, step, mod ID) ID {
	return (base + step) % mod
}

// subMod subtracts step from base and wraps it into [0, mod).
func subMod(base, step, mod ID) ID {
	return (base + mod - (step % mod)) % mod
}

// Belongs is the ring-arc containment predicate that underlies every
// ordering decision in the routing state: does id lie on the arc that
// starts at l and ends at r, walking clockwise, with the given
// inclusivity at each end?
//
// The three cases are exhaustive:
//   - l < r:  ordinary interval containment.
//   - l == r: a degenerate arc. Inclusive on either end means "everywhere";
//     exclusive on both means "everywhere except the single point l".
//   - l > r:  the arc wraps past 0. id belongs iff it is NOT in the
//     complementary arc (r, l) with both inclusivities flipped.
func Belongs(l ID, lIncl bool, r ID, rIncl bool, id ID) bool {
	switch {
	case l < r:
		return belongsOrdinary(l, lIncl, r, rIncl, id)
	case l == r:
		if lIncl || rIncl {
			return true
		}
		return id != l
	default: // l > r
		return !belongsOrdinary(r, !rIncl, l, !lIncl, id)
	}
}

// belongsOrdinary handles the l < r case: plain interval containment
// with the requested inclusivity at each end.
func belongsOrdinary(l ID, lIncl bool, r ID, rIncl bool, id ID) bool {
	lowOK := id > l || (lIncl && id == l)
	highOK := id < r || (rIncl && id == r)
	return lowOK && highOK
}

// foldSHA1 folds a SHA-1 digest of s into an m-bit identifier by XORing
// consecutive m-bit chunks of the 160-bit digest together. This is the
// weak-but-documented scheme the reference implementation uses: it is
// tuned for small M (the reference configuration uses M=5, so the 160-bit
// digest folds into 32 chunks of 5 bits) and collides more often as M
// grows relative to 160. Every node in a ring must use the same M and the
// same folding scheme, since a joiner and its peers must independently
// compute the same key for the same address.
func foldSHA1(s string, m uint) ID {
	digest := sha1.Sum([]byte(s))
	bits := new(big.Int).SetBytes(digest[:])

	chunkMask := new(big.Int).Lsh(big.NewInt(1), m)
	chunkMask.Sub(chunkMask, big.NewInt(1))

	var id ID
	remaining := uint(len(digest) * 8)
	for remaining > 0 {
		width := m
		if width > remaining {
			width = remaining
		}
		mask := chunkMask
		if width != m {
			mask = new(big.Int).Lsh(big.NewInt(1), width)
			mask.Sub(mask, big.NewInt(1))
		}
		chunk := new(big.Int).And(bits, mask)
		id ^= chunk.Uint64()
		bits.Rsh(bits, width)
		remaining -= width
	}
	return id & chunkMask.Uint64()
}

// HashAddress derives a node's key by folding the SHA-1 digest of its
// canonical address form into m bits.
func HashAddress(addr Addr, m uint) ID {
	return foldSHA1(addr.String(), m)
}

// HashFilename derives a stored object's key the same way, so that a
// filename and a node address are commensurable points on the same ring.
func HashFilename(name string, m uint) ID {
	return foldSHA1(name, m)
}
