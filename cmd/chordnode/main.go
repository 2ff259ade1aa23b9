// Command chordnode starts a single Chord ring participant and drops
// into an interactive shell for inspecting it. It is the external
// bootstrap CLI spec.md §6 describes: not part of the chord package's
// API, just enough glue to run and poke at a node from a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"chordring/chord"
)

func main() {
	var (
		m       = flag.Uint("m", 5, "bit-width of the identifier space")
		r       = flag.Int("r", 2, "number of backup successors tracked")
		period  = flag.Duration("period", 20*time.Millisecond, "maintenance loop period")
		timeout = flag.Duration("timeout", 200*time.Millisecond, "per-request timeout")
		host    = flag.String("host", "127.0.0.1", "address to advertise and bind")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <nodeId> [helperId]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		chord.SetLogLevel(zerolog.DebugLevel)
	} else {
		chord.SetLogLevel(zerolog.InfoLevel)
	}

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := chord.Config{
		M:                 *m,
		R:                 *r,
		MaintenancePeriod: *period,
		RequestTimeout:    *timeout,
	}

	nodeID := args[0]
	port, err := lookupPort(nodeID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chordnode:", err)
		os.Exit(1)
	}

	self := chord.NewAddr(*host, port)
	node := chord.NewNode(cfg, self, chord.StaticGenerator{
		Filenames: []string{
			nodeID + "-a.txt",
			nodeID + "-b.txt",
			nodeID + "-c.txt",
		},
	})

	if len(args) == 1 {
		if err := node.Bootstrap(port); err != nil {
			fmt.Fprintln(os.Stderr, "chordnode: bootstrap failed:", err)
			os.Exit(1)
		}
	} else {
		helperID := args[1]
		helperPort, err := lookupPort(helperID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "chordnode:", err)
			os.Exit(1)
		}
		helper := chord.NewAddr(*host, helperPort)
		if err := node.Join(port, helper); err != nil {
			fmt.Fprintln(os.Stderr, "chordnode: join failed:", err)
			os.Exit(1)
		}
	}

	runShell(node)
	node.Stop()
}
