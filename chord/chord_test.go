package chord

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testConfig runs the maintenance loops fast enough for a unit test to
// observe convergence without a multi-second sleep, at the same 5-bit
// keyspace and 2-deep successor list used elsewhere in the suite.
func testConfig() Config {
	return Config{
		M:                 5,
		R:                 2,
		MaintenancePeriod: 5 * time.Millisecond,
		RequestTimeout:    200 * time.Millisecond,
	}
}

// reservePort grabs an OS-assigned TCP port and releases it immediately,
// so a Node can be told its own port before Serve binds it - necessary
// because a node advertises its own address to peers as soon as it joins,
// before the listener the address describes actually exists.
func reservePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())
	return port
}

func newLocalNode(t *testing.T, cfg Config, gen KeyGenerator) (*Node, Addr) {
	t.Helper()
	port := reservePort(t)
	addr := NewAddr("127.0.0.1", port)
	n := NewNode(cfg, addr, gen)
	return n, addr
}

// eventually polls cond every interval until it returns true or timeout
// elapses, failing the test otherwise. Chord's maintenance loops converge
// asynchronously, so tests wait on observable state rather than sleeping
// a hardcoded duration and hoping.
func eventually(t *testing.T, timeout, interval time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %s", timeout)
		}
		time.Sleep(interval)
	}
}

func TestBootstrapIsItsOwnRing(t *testing.T) {
	cfg := testConfig()
	n, addr := newLocalNode(t, cfg, StaticGenerator{Filenames: []string{"a.txt", "b.txt"}})
	require.NoError(t, n.Bootstrap(addr.Port))
	defer n.Stop()

	require.True(t, n.IsActive())
	pred, ok := n.PredecessorAddr()
	require.True(t, ok)
	require.True(t, pred.Equal(addr))

	for _, f := range n.Fingers() {
		require.True(t, f.Equal(addr))
	}
	require.True(t, n.Successors()[0].Equal(addr))
	require.ElementsMatch(t, []string{"a.txt", "b.txt"}, n.Filenames())
}

func TestJoinTwoNodesConverge(t *testing.T) {
	cfg := testConfig()

	a, addrA := newLocalNode(t, cfg, StaticGenerator{Filenames: []string{"one.txt", "two.txt", "three.txt"}})
	require.NoError(t, a.Bootstrap(addrA.Port))
	defer a.Stop()

	b, addrB := newLocalNode(t, cfg, nil)
	require.NoError(t, b.Join(addrB.Port, addrA))
	defer b.Stop()

	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		predA, ok := a.PredecessorAddr()
		return ok && predA.Equal(addrB)
	})
	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		predB, ok := b.PredecessorAddr()
		return ok && predB.Equal(addrA)
	})
	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		return a.Fingers()[0].Equal(addrB) && b.Fingers()[0].Equal(addrA)
	})

	// Every file must end up owned by exactly one of the two nodes.
	total := len(a.Filenames()) + len(b.Filenames())
	require.Equal(t, 3, total)
}

func TestJoinThreeNodesRingCloses(t *testing.T) {
	cfg := testConfig()

	a, addrA := newLocalNode(t, cfg, StaticGenerator{Filenames: []string{"f1", "f2", "f3", "f4", "f5"}})
	require.NoError(t, a.Bootstrap(addrA.Port))
	defer a.Stop()

	b, addrB := newLocalNode(t, cfg, nil)
	require.NoError(t, b.Join(addrB.Port, addrA))
	defer b.Stop()

	c, addrC := newLocalNode(t, cfg, nil)
	require.NoError(t, c.Join(addrC.Port, addrA))
	defer c.Stop()

	nodes := []*Node{a, b, c}
	eventually(t, 3*time.Second, 10*time.Millisecond, func() bool {
		// A ring of three has closed once every node's successor
		// agrees that node is its predecessor.
		for _, n := range nodes {
			succ := n.Fingers()[0]
			var target *Node
			for _, m := range nodes {
				if m.Self().Equal(succ) {
					target = m
				}
			}
			if target == nil {
				return false
			}
			pred, ok := target.PredecessorAddr()
			if !ok || !pred.Equal(n.Self()) {
				return false
			}
		}
		return true
	})

	total := 0
	for _, n := range nodes {
		total += len(n.Filenames())
	}
	require.Equal(t, 5, total)
}

func TestStabilizeRepairsAfterSuccessorDeparture(t *testing.T) {
	cfg := testConfig()

	a, addrA := newLocalNode(t, cfg, nil)
	require.NoError(t, a.Bootstrap(addrA.Port))
	defer a.Stop()

	b, addrB := newLocalNode(t, cfg, nil)
	require.NoError(t, b.Join(addrB.Port, addrA))

	c, addrC := newLocalNode(t, cfg, nil)
	require.NoError(t, c.Join(addrC.Port, addrA))
	defer c.Stop()

	nodes := []*Node{a, b, c}
	eventually(t, 3*time.Second, 10*time.Millisecond, func() bool {
		for _, n := range nodes {
			succ := n.Fingers()[0]
			var target *Node
			for _, m := range nodes {
				if m.Self().Equal(succ) {
					target = m
				}
			}
			if target == nil {
				return false
			}
			pred, ok := target.PredecessorAddr()
			if !ok || !pred.Equal(n.Self()) {
				return false
			}
		}
		return true
	})

	// b departs abruptly, without notifying anyone.
	b.Stop()

	survivors := []*Node{a, c}
	eventually(t, 3*time.Second, 10*time.Millisecond, func() bool {
		for _, n := range survivors {
			for _, f := range n.Fingers() {
				if f.Equal(addrB) {
					return false
				}
			}
			for _, s := range n.Successors() {
				if s.Equal(addrB) {
					return false
				}
			}
		}
		return true
	})
}
