package main

import "fmt"

// portTable is the static, deployment-provided ID→port mapping spec.md
// §6 marks as external glue: enough to let a handful of local processes
// on the same machine find each other by a short symbolic node id
// instead of typing out full addresses.
var portTable = map[string]string{
	"1": "7001",
	"2": "7002",
	"3": "7003",
	"4": "7004",
	"5": "7005",
	"6": "7006",
	"7": "7007",
	"8": "7008",
}

// lookupPort resolves a symbolic node id to the local port it is
// configured to listen on.
func lookupPort(id string) (string, error) {
	port, ok := portTable[id]
	if !ok {
		return "", fmt.Errorf("chordnode: no port configured for node id %q", id)
	}
	return port, nil
}
