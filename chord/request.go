package chord

// Command names as they appear on the wire, verbatim from the protocol
// table: "COMMAND[:ARG1[:ARG2[...]]]", newline-terminated, one per
// connection.
const (
	CmdYourSuccessor     = "YourSuccessor"
	CmdYourPredecessor   = "YourPredecessor"
	CmdFindSuccessor     = "FindSuccessor"
	CmdFindPredecessor   = "FindPredecessor"
	CmdChangeSuccessor   = "ChangeSuccessor"
	CmdChangePredecessor = "ChangePredecessor"
	CmdUpdateIthFinger   = "UpdateithFinger"
	CmdTransferKeys      = "TransferKeys"
	CmdNotify            = "Notify"
	CmdAlive             = "Alive"
)

// ackDone is the benign acknowledgment sent for both successful pure-setter
// commands and unrecognized commands, so a malformed request never looks
// like a dead peer to the caller.
const ackDone = "Done"

// aliveToken is the non-empty liveness token returned by Alive.
const aliveToken = "Alive"
