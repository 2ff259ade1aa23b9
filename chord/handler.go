package chord

import (
	"bufio"
	"net"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Serve binds a TCP listener on port and starts accepting requests. Each
// inbound connection is handled by a fresh goroutine so the accept loop
// never blocks on a slow handler; a handler's own outbound RPCs (a nested
// FindPredecessor, for instance) block only that goroutine.
func (n *Node) Serve(port string) error {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.listener = ln
	n.mu.Unlock()
	n.active.Store(true)

	n.acceptDone.Add(1)
	go n.acceptLoop(ln)
	return nil
}

// ListenPort returns the port the request handler is actually bound to,
// which may differ from the port requested of Serve (e.g. "0" for an
// OS-assigned ephemeral port in tests).
func (n *Node) ListenPort() string {
	n.mu.Lock()
	ln := n.listener
	n.mu.Unlock()
	if ln == nil {
		return ""
	}
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	return port
}

func (n *Node) acceptLoop(ln net.Listener) {
	defer n.acceptDone.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if !n.active.Load() {
				return
			}
			log.Error().Err(err).Msg("chord: accept failed")
			continue
		}
		go n.handleConn(conn)
	}
}

func (n *Node) handleConn(conn net.Conn) {
	defer conn.Close()
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	reply := n.dispatch(strings.TrimRight(line, "\r\n"))
	_, _ = conn.Write([]byte(reply + "\n"))
}

// dispatch decodes one request line and returns the response line. An
// unrecognized command returns a benign acknowledgment rather than
// closing the connection abruptly, so a malformed request never makes
// this node look dead to its caller.
func (n *Node) dispatch(line string) string {
	cmd, rest, _ := strings.Cut(line, ":")

	switch cmd {
	case CmdYourSuccessor:
		return n.Fingers()[0].String()

	case CmdYourPredecessor:
		pred, ok := n.PredecessorAddr()
		if !ok {
			return ""
		}
		return pred.String()

	case CmdFindSuccessor:
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return ackDone
		}
		return n.Successor(id).String()

	case CmdFindPredecessor:
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return ackDone
		}
		return n.PredecessorOf(id).String()

	case CmdChangeSuccessor:
		addr, err := ParseAddr(rest)
		if err != nil {
			return ackDone
		}
		n.ChangeSuccessor(addr)
		return ackDone

	case CmdChangePredecessor:
		addr, err := ParseAddr(rest)
		if err != nil {
			return ackDone
		}
		n.ChangePredecessor(addr)
		return ackDone

	case CmdUpdateIthFinger:
		iStr, addrStr, found := strings.Cut(rest, ":")
		if !found {
			return ackDone
		}
		i, err := strconv.Atoi(iStr)
		if err != nil {
			return ackDone
		}
		addr, err := ParseAddr(addrStr)
		if err != nil {
			return ackDone
		}
		n.UpdateIthFinger(i, addr)
		return ackDone

	case CmdTransferKeys:
		firstStr, secondStr, found := strings.Cut(rest, ":")
		if !found {
			return ""
		}
		first, err1 := strconv.ParseUint(firstStr, 10, 64)
		second, err2 := strconv.ParseUint(secondStr, 10, 64)
		if err1 != nil || err2 != nil {
			return ""
		}
		return n.transferKeysServer(first, second)

	case CmdNotify:
		addr, err := ParseAddr(rest)
		if err != nil {
			return ackDone
		}
		n.Notify(addr)
		return ackDone

	case CmdAlive:
		return aliveToken

	default:
		return ackDone
	}
}

// Stop closes the listening socket, unblocking the accept loop, and
// clears the active flag every maintenance loop reads at each iteration
// boundary. It waits for the accept loop and all three maintenance loops
// to observe the signal and return before returning itself. No in-flight
// RPC is drained: peers that call a stopped node simply observe it as
// unreachable and repair around it. Calling Stop on a node that is
// already stopped returns ErrStopped.
func (n *Node) Stop() error {
	if !n.active.CompareAndSwap(true, false) {
		return ErrStopped
	}
	n.mu.Lock()
	ln := n.listener
	n.mu.Unlock()
	if ln != nil {
		_ = ln.Close()
	}
	n.acceptDone.Wait()
	n.loopsDone.Wait()
	return nil
}
