package chord

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddrStringRoundTrip(t *testing.T) {
	addr := Addr{Host: "node-a", IP: "10.0.0.5", Port: "7331"}
	got, err := ParseAddr(addr.String())
	require.NoError(t, err)
	require.Equal(t, addr, got)
}

func TestAddrStringDefaultsHostToIP(t *testing.T) {
	addr := Addr{IP: "10.0.0.5", Port: "7331"}
	require.Equal(t, "10.0.0.5/10.0.0.5:7331", addr.String())
}

func TestParseAddrRejectsMissingSeparators(t *testing.T) {
	_, err := ParseAddr("no-slash-here:1234")
	require.Error(t, err)

	_, err = ParseAddr("host/no-colon")
	require.Error(t, err)

	_, err = ParseAddr("host/10.0.0.5:")
	require.Error(t, err)
}

func TestParseAddrUsesLastColonForPort(t *testing.T) {
	// IPv6-shaped literal addresses can themselves contain colons; the
	// port must come from the LAST colon in the remainder.
	got, err := ParseAddr("node-a/::1:9000")
	require.NoError(t, err)
	require.Equal(t, "node-a", got.Host)
	require.Equal(t, "::1", got.IP)
	require.Equal(t, "9000", got.Port)
}

func TestAddrEqualIgnoresHost(t *testing.T) {
	a := Addr{Host: "alpha", IP: "127.0.0.1", Port: "9001"}
	b := Addr{Host: "beta", IP: "127.0.0.1", Port: "9001"}
	require.True(t, a.Equal(b))

	c := Addr{Host: "alpha", IP: "127.0.0.1", Port: "9002"}
	require.False(t, a.Equal(c))
}

func TestAddrIsZero(t *testing.T) {
	require.True(t, Addr{}.IsZero())
	require.False(t, Addr{IP: "127.0.0.1", Port: "1"}.IsZero())
}
