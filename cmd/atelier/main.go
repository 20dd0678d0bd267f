package main

import (
	"fmt"
	"os"
)

const usageText = `atelier is a terminal console for a generative studio gateway.

Usage:
  atelier <command> [flags]

Commands:
  ui        run the terminal UI
  records   list or delete generated records
  config    print the effective configuration
  help      show help

Flags:
  -h, --help   show help

UI flags:
  --conversation <id>   conversation to follow on the chat channel

Records flags:
  --remote              list via the gateway instead of the local cache
  --delete <id>         delete a record by id

Examples:
  atelier ui --conversation conv-42
  atelier records --remote
  atelier records --delete 7
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	case "ui":
		exitOnErr("ui", runUI(args[1:]))
	case "records":
		exitOnErr("records", runRecords(args[1:]))
	case "config":
		exitOnErr("config", runConfig(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func exitOnErr(command string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "atelier %s: %v\n", command, err)
	os.Exit(1)
}
