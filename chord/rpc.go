package chord

import (
	"strconv"

	"golang.org/x/xerrors"
)

// idStr renders an ID in the wire's plain decimal form.
func idStr(id ID) string {
	return strconv.FormatUint(id, 10)
}

// rpcYourSuccessor asks addr for its immediate successor (fingers[0]).
func (n *Node) rpcYourSuccessor(addr Addr) (Addr, error) {
	reply, err := n.send(addr, CmdYourSuccessor)
	if err != nil {
		return Addr{}, err
	}
	result, perr := ParseAddr(reply)
	if perr != nil {
		return Addr{}, xerrors.Errorf("%w: malformed YourSuccessor reply from %s: %v", ErrUnreachable, addr, perr)
	}
	return result, nil
}

// rpcYourPredecessor asks addr for its predecessor. A well-formed empty
// reply means addr has no predecessor yet; that is reported via the bool,
// not an error.
func (n *Node) rpcYourPredecessor(addr Addr) (Addr, bool, error) {
	reply, err := n.send(addr, CmdYourPredecessor)
	if err != nil {
		return Addr{}, false, err
	}
	if reply == "" {
		return Addr{}, false, nil
	}
	result, perr := ParseAddr(reply)
	if perr != nil {
		return Addr{}, false, xerrors.Errorf("%w: malformed YourPredecessor reply from %s: %v", ErrUnreachable, addr, perr)
	}
	return result, true, nil
}

// rpcFindSuccessor asks addr to resolve successor(id).
func (n *Node) rpcFindSuccessor(addr Addr, id ID) (Addr, error) {
	reply, err := n.send(addr, CmdFindSuccessor+":"+idStr(id))
	if err != nil {
		return Addr{}, err
	}
	result, perr := ParseAddr(reply)
	if perr != nil {
		return Addr{}, xerrors.Errorf("%w: malformed FindSuccessor reply from %s: %v", ErrUnreachable, addr, perr)
	}
	return result, nil
}

// rpcFindPredecessor asks addr to resolve predecessor(id).
func (n *Node) rpcFindPredecessor(addr Addr, id ID) (Addr, error) {
	reply, err := n.send(addr, CmdFindPredecessor+":"+idStr(id))
	if err != nil {
		return Addr{}, err
	}
	result, perr := ParseAddr(reply)
	if perr != nil {
		return Addr{}, xerrors.Errorf("%w: malformed FindPredecessor reply from %s: %v", ErrUnreachable, addr, perr)
	}
	return result, nil
}

// rpcChangeSuccessor tells addr to set its fingers[0] to target.
func (n *Node) rpcChangeSuccessor(addr Addr, target Addr) error {
	_, err := n.send(addr, CmdChangeSuccessor+":"+target.String())
	return err
}

// rpcChangePredecessor tells addr to set its predecessor to target.
func (n *Node) rpcChangePredecessor(addr Addr, target Addr) error {
	_, err := n.send(addr, CmdChangePredecessor+":"+target.String())
	return err
}

// rpcUpdateIthFinger propagates a finger-table update to addr. Errors are
// expected to be treated as best-effort by callers: the announce fan-out
// in join.go and the recursive forwarding in mutate.go both ignore them.
func (n *Node) rpcUpdateIthFinger(addr Addr, i int, candidate Addr) error {
	_, err := n.send(addr, CmdUpdateIthFinger+":"+strconv.Itoa(i)+":"+candidate.String())
	return err
}

// rpcTransferKeys asks addr to hand over every file it owns whose hash
// falls in (second, first]. The reply is filenames joined by ':', or the
// empty string if none moved; both are valid, non-error outcomes.
func (n *Node) rpcTransferKeys(addr Addr, first, second ID) (string, error) {
	return n.send(addr, CmdTransferKeys+":"+idStr(first)+":"+idStr(second))
}

// rpcNotify hints to addr that self may be its predecessor.
func (n *Node) rpcNotify(addr Addr, self Addr) error {
	_, err := n.send(addr, CmdNotify+":"+self.String())
	return err
}

// rpcAlive probes addr's liveness.
func (n *Node) rpcAlive(addr Addr) error {
	_, err := n.send(addr, CmdAlive)
	return err
}
