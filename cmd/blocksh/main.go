// Command blocksh is an interactive shell over a block store file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

// Command completer for readline
var completer = readline.NewPrefixCompleter(
	readline.PcItem(".help"),
	readline.PcItem(".open"),
	readline.PcItem(".close"),
	readline.PcItem(".info"),
	readline.PcItem(".exit"),
	readline.PcItem("PUT"),
	readline.PcItem("GET"),
	readline.PcItem("SCAN"),
)

const helpText = `
blocksh - interactive shell for fixed-slot block store files.

Usage:
  blocksh [-block-size N] [path]   - Start, optionally opening a store at path

Commands:
  .help                      - Show this help message
  .open SIZE PATH [LABEL]    - Create (or truncate) a store with SIZE-byte slots
  .close                     - Close the store and delete its file
  .info                      - Show label, path, block size and slot count
  .exit                      - Exit; an open store is closed and deleted

  PUT index json             - Store a JSON value at index
  GET index                  - Print the value at index
  SCAN [from [to]]           - Print non-empty slots in [from, to)
`

func main() {
	blockSize := flag.Int("block-size", 4096, "slot size used when a path is given on the command line")
	flag.Parse()

	if err := runSession(&shell{}, flag.Arg(0), *blockSize, os.Stdout, runInteractive); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %s\n", err)
		os.Exit(1)
	}
}

// runSession opens path when given, runs the session loop and always closes
// the store afterwards, including when the loop fails to start.
func runSession(sh *shell, path string, blockSize int, out io.Writer, loop func(*shell) error) error {
	if path != "" {
		sh.exec(fmt.Sprintf(".open %d %s", blockSize, path), out)
	}
	defer sh.closeStore(out)
	return loop(sh)
}

// runInteractive reads commands until EOF, interrupt or .exit.
// The caller owns the store and closes it afterwards.
func runInteractive(sh *shell) error {
	fmt.Println("blocksh - enter .help for usage hints.")

	historyFile := filepath.Join(os.TempDir(), ".blocksh_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "blocksh> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		rl.SetPrompt(sh.prompt())
		line, readErr := rl.Readline()
		if readErr != nil {
			if errors.Is(readErr, readline.ErrInterrupt) {
				if len(line) == 0 {
					break
				}
				continue
			} else if errors.Is(readErr, io.EOF) {
				fmt.Println("Goodbye!")
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", readErr)
			continue
		}
		if sh.exec(line, os.Stdout) {
			fmt.Println("Goodbye!")
			return nil
		}
	}
	return nil
}
