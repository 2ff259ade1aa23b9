package chord

import (
	"net"
	"strings"

	"golang.org/x/xerrors"
)

// Addr is a node's network address in the wire protocol's canonical form:
// hostname, literal IP address, and port, serialized as "host/ip:port" -
// the same shape a socket's peer address takes when stringified. It is a
// value type: nodes never hold references to one another, only addresses
// they re-resolve over the wire on every call.
type Addr struct {
	Host string
	IP   string
	Port string
}

// String renders the canonical wire form: hostname, a slash, the literal
// address, a colon, and the port.
func (a Addr) String() string {
	host := a.Host
	if host == "" {
		host = a.IP
	}
	return host + "/" + a.IP + ":" + a.Port
}

// DialAddr returns the "ip:port" form suitable for net.Dial.
func (a Addr) DialAddr() string {
	return a.IP + ":" + a.Port
}

// IsZero reports whether a is the zero Addr (no port assigned).
func (a Addr) IsZero() bool {
	return a.Port == ""
}

// Equal compares two addresses by their dial-relevant fields.
func (a Addr) Equal(b Addr) bool {
	return a.IP == b.IP && a.Port == b.Port
}

// ParseAddr parses the wire form produced by String: everything before the
// FIRST '/' is the hostname, everything after the LAST ':' is the port,
// and what remains between them is the literal address.
func ParseAddr(s string) (Addr, error) {
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return Addr{}, xerrors.Errorf("chord: address %q has no host separator", s)
	}
	host := s[:slash]
	rest := s[slash+1:]

	colon := strings.LastIndexByte(rest, ':')
	if colon < 0 {
		return Addr{}, xerrors.Errorf("chord: address %q has no port separator", s)
	}
	ip := rest[:colon]
	port := rest[colon+1:]
	if port == "" {
		return Addr{}, xerrors.Errorf("chord: address %q has an empty port", s)
	}
	return Addr{Host: host, IP: ip, Port: port}, nil
}

// NewAddr resolves host to a literal IP address and pairs it with port,
// producing the canonical form nodes exchange on the wire. If host cannot
// be resolved, it is used verbatim as its own literal form so that local
// testing against "localhost"-style names still works.
func NewAddr(host, port string) Addr {
	ip := host
	if resolved, err := net.LookupHost(host); err == nil && len(resolved) > 0 {
		ip = resolved[0]
	}
	return Addr{Host: host, IP: ip, Port: port}
}
