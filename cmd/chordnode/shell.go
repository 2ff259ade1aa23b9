package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"chordring/chord"
)

// runShell is the interactive loop spec.md §6 asks the bootstrap CLI to
// offer: print address, print neighbors, print stored filenames, print
// successor list, print finger table, look up a key, stop.
func runShell(node *chord.Node) {
	prompt := &survey.Select{
		Message: "chordnode> ",
		Options: []string{
			"print address",
			"print neighbors",
			"print stored filenames",
			"print successor list",
			"print finger table",
			"look up a key",
			"stop",
		},
	}

	for {
		var action string
		if err := survey.AskOne(prompt, &action); err != nil {
			color.HiRed("chordnode: %v", err)
			return
		}

		switch action {
		case "print address":
			printAddress(node)
		case "print neighbors":
			printNeighbors(node)
		case "print stored filenames":
			printFilenames(node)
		case "print successor list":
			printSuccessors(node)
		case "print finger table":
			printFingers(node)
		case "look up a key":
			lookupKey(node)
		case "stop":
			color.HiYellow("chordnode: stopping")
			return
		}
	}
}

func printAddress(node *chord.Node) {
	color.HiCyan("self:  %s", node.Self())
	fmt.Printf("key:   %d\n", node.Key())
}

func printNeighbors(node *chord.Node) {
	pred, ok := node.PredecessorAddr()
	if !ok {
		color.Yellow("predecessor: (none yet)")
	} else {
		fmt.Printf("predecessor: %s\n", pred)
	}
	fmt.Printf("successor:   %s\n", node.Fingers()[0])
}

func printFilenames(node *chord.Node) {
	names := node.Filenames()
	if len(names) == 0 {
		color.Yellow("(no files owned)")
		return
	}
	for _, name := range names {
		fmt.Println(" -", name)
	}
}

func printSuccessors(node *chord.Node) {
	for i, addr := range node.Successors() {
		fmt.Printf("successors[%d]: %s\n", i, addr)
	}
}

func printFingers(node *chord.Node) {
	for i, addr := range node.Fingers() {
		fmt.Printf("fingers[%d]: %s\n", i, addr)
	}
}

func lookupKey(node *chord.Node) {
	var name string
	if err := survey.AskOne(&survey.Input{Message: "filename to resolve:"}, &name); err != nil {
		color.HiRed("chordnode: %v", err)
		return
	}
	key := chord.HashFilename(name, uint(len(node.Fingers())))
	owner := node.Successor(key)
	color.HiGreen("hash(%s) = %d, owned by %s", name, key, owner)
}
