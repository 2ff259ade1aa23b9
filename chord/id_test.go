package chord

import (
	"testing"

	"github.com/fogfish/it"
)

// TestBelongsEdgeTable exercises the edge table a Chord implementation
// must satisfy, covering ordinary, wrap-around and degenerate arcs at
// their boundary points.
func TestBelongsEdgeTable(t *testing.T) {
	cases := []struct {
		name          string
		l             ID
		lIncl         bool
		r             ID
		rIncl         bool
		id            ID
		want          bool
	}{
		{"ordinary-exclusive-inside", 5, false, 10, false, 7, true},
		{"ordinary-exclusive-at-left", 5, false, 10, false, 5, false},
		{"ordinary-left-inclusive-at-left", 5, true, 10, false, 5, true},
		{"wrap-inside", 28, false, 3, false, 30, true},
		{"wrap-at-right-exclusive", 28, false, 3, false, 3, false},
		{"degenerate-exclusive-at-point", 7, false, 7, false, 7, false},
		{"degenerate-left-inclusive-everywhere", 7, true, 7, false, 3, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Belongs(c.l, c.lIncl, c.r, c.rIncl, c.id)
			it.Ok(t).If(got).Equal(c.want)
		})
	}
}

// TestBelongsComplementLaw checks L1: belongs(L,Li,R,Ri,x) is the negation
// of belongs(R,!Ri,L,!Li,x) whenever L != R.
func TestBelongsComplementLaw(t *testing.T) {
	const keyspace = 32
	for l := ID(0); l < keyspace; l++ {
		for r := ID(0); r < keyspace; r++ {
			if l == r {
				continue
			}
			for _, lIncl := range []bool{true, false} {
				for _, rIncl := range []bool{true, false} {
					for x := ID(0); x < keyspace; x++ {
						lhs := Belongs(l, lIncl, r, rIncl, x)
						rhs := !Belongs(r, !rIncl, l, !lIncl, x)
						if lhs != rhs {
							t.Fatalf("law L1 broken: l=%d li=%v r=%d ri=%v x=%d lhs=%v rhs=%v",
								l, lIncl, r, rIncl, x, lhs, rhs)
						}
					}
				}
			}
		}
	}
}

// TestBelongsDegenerateLaw checks L2: belongs(L,true,L,true,x) is always
// true, and belongs(L,false,L,false,x) is true everywhere except x==L.
func TestBelongsDegenerateLaw(t *testing.T) {
	const keyspace = 32
	for l := ID(0); l < keyspace; l++ {
		for x := ID(0); x < keyspace; x++ {
			it.Ok(t).If(Belongs(l, true, l, true, x)).Equal(true)
			it.Ok(t).If(Belongs(l, false, l, false, x)).Equal(x != l)
		}
	}
}

// TestFoldSHA1Deterministic verifies the address-hashing scheme is a pure
// function of its input, and that the folded identifier fits in the m-bit
// keyspace.
func TestFoldSHA1Deterministic(t *testing.T) {
	const m = 5
	a := foldSHA1("node-a", m)
	b := foldSHA1("node-a", m)
	it.Ok(t).If(a).Equal(b)

	if a >= ID(1)<<m {
		t.Fatalf("folded id %d exceeds keyspace 2^%d", a, m)
	}
}

func TestHashAddressAndFilenameShareScheme(t *testing.T) {
	addr := Addr{Host: "localhost", IP: "127.0.0.1", Port: "9001"}
	gotAddr := HashAddress(addr, 5)
	gotFile := HashFilename(addr.String(), 5)
	it.Ok(t).If(gotAddr).Equal(gotFile)
}
