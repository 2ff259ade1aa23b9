package chord

import (
	"bufio"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// sendRequest opens one short-lived TCP connection to addr, writes a
// single newline-terminated request line, reads a single response line,
// and closes the connection. There is no retry here and no connection
// reuse: retry, if any, is a policy the calling maintenance loop applies.
//
// Any socket, I/O, or timeout failure is folded into ErrUnreachable so
// every caller has one failure mode to reason about.
func sendRequest(addr Addr, timeout time.Duration, line string) (string, error) {
	conn, err := net.DialTimeout("tcp", addr.DialAddr(), timeout)
	if err != nil {
		return "", xerrors.Errorf("%w: dial %s: %v", ErrUnreachable, addr, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return "", xerrors.Errorf("%w: set deadline: %v", ErrUnreachable, err)
	}

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return "", xerrors.Errorf("%w: write to %s: %v", ErrUnreachable, addr, err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", xerrors.Errorf("%w: read from %s: %v", ErrUnreachable, addr, err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// send issues a request to addr using the node's configured timeout,
// logging the outcome at debug level. It is the single choke point every
// rpcXxx helper in rpc.go funnels through.
func (n *Node) send(addr Addr, line string) (string, error) {
	reply, err := sendRequest(addr, n.cfg.RequestTimeout, line)
	if err != nil {
		log.Debug().Str("peer", addr.String()).Str("request", line).Err(err).Msg("chord: rpc failed")
		return "", err
	}
	return reply, nil
}
