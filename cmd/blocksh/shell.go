package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ic-timon/blockfile/blockstore"
	"github.com/ic-timon/blockfile/blockstore/layout"
)

// shell holds the store opened by the current session.
type shell struct {
	store *blockstore.Store[json.RawMessage]
}

func (sh *shell) prompt() string {
	if sh.store == nil {
		return "blocksh> "
	}
	return fmt.Sprintf("blocksh:%s> ", sh.store.Label())
}

// exec runs one command line and reports whether the session should end.
func (sh *shell) exec(line string, out io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	parts := strings.Fields(line)
	cmd := strings.ToUpper(parts[0])

	if strings.HasPrefix(cmd, ".") {
		switch strings.ToLower(cmd) {
		case ".help":
			fmt.Fprint(out, helpText)
		case ".open":
			sh.open(parts[1:], out)
		case ".close":
			if sh.store == nil {
				fmt.Fprintln(out, "No store open")
				return false
			}
			sh.closeStore(out)
		case ".info":
			sh.info(out)
		case ".exit":
			sh.closeStore(out)
			return true
		default:
			fmt.Fprintf(out, "Unknown command: %s\n", parts[0])
		}
		return false
	}

	if sh.store == nil {
		fmt.Fprintln(out, "No store open, use .open SIZE PATH")
		return false
	}
	switch cmd {
	case "PUT":
		if len(parts) < 3 {
			fmt.Fprintln(out, "Usage: PUT index json")
			return false
		}
		index, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fmt.Fprintf(out, "Error: invalid index %q\n", parts[1])
			return false
		}
		// The JSON value may contain whitespace, so take the rest of the raw line.
		rest := strings.TrimSpace(line[len(parts[0]):])
		value := strings.TrimSpace(rest[len(parts[1]):])
		if !json.Valid([]byte(value)) {
			fmt.Fprintln(out, "Error: value is not valid JSON")
			return false
		}
		if err := sh.store.Put(index, json.RawMessage(value)); err != nil {
			fmt.Fprintf(out, "Error: %s\n", err)
			return false
		}
		fmt.Fprintln(out, "OK")
	case "GET":
		if len(parts) != 2 {
			fmt.Fprintln(out, "Usage: GET index")
			return false
		}
		index, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fmt.Fprintf(out, "Error: invalid index %q\n", parts[1])
			return false
		}
		v, ok, err := sh.store.Get(index)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", err)
			return false
		}
		if !ok {
			fmt.Fprintln(out, "(absent)")
			return false
		}
		fmt.Fprintln(out, string(v))
	case "SCAN":
		sh.scan(parts[1:], out)
	default:
		fmt.Fprintf(out, "Unknown command: %s\n", parts[0])
	}
	return false
}

func (sh *shell) open(args []string, out io.Writer) {
	if len(args) < 2 {
		fmt.Fprintln(out, "Usage: .open SIZE PATH [LABEL]")
		return
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "Error: invalid block size %q\n", args[0])
		return
	}
	label := ""
	if len(args) > 2 {
		label = args[2]
	}
	cfg := blockstore.DefaultConfig()
	cfg.BlockSize = size
	cfg.Path = args[1]
	cfg.Label = label
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "Error opening store: %s\n", err)
		return
	}
	// Closing deletes the old file, which may be the path about to be opened.
	sh.closeStore(out)
	s, err := blockstore.OpenConfig[json.RawMessage](cfg)
	if err != nil {
		fmt.Fprintf(out, "Error opening store: %s\n", err)
		return
	}
	sh.store = s
	fmt.Fprintf(out, "Store %s opened at %s (%d-byte slots)\n", s.Label(), s.Path(), s.BlockSize())
}

func (sh *shell) closeStore(out io.Writer) {
	if sh.store == nil {
		return
	}
	label := sh.store.Label()
	if err := sh.store.Close(); err != nil {
		fmt.Fprintf(out, "Error closing store: %s\n", err)
	} else {
		fmt.Fprintf(out, "Store %s closed and removed\n", label)
	}
	sh.store = nil
}

func (sh *shell) info(out io.Writer) {
	if sh.store == nil {
		fmt.Fprintln(out, "No store open")
		return
	}
	fmt.Fprintf(out, "Label:      %s\n", sh.store.Label())
	fmt.Fprintf(out, "Path:       %s\n", sh.store.Path())
	fmt.Fprintf(out, "Block size: %d\n", sh.store.BlockSize())
	view, err := sh.store.View()
	if err != nil {
		fmt.Fprintf(out, "Error: %s\n", err)
		return
	}
	defer view.Close()
	fmt.Fprintf(out, "Slots:      %d\n", view.NumSlots())
}

func (sh *shell) scan(args []string, out io.Writer) {
	view, err := sh.store.View()
	if err != nil {
		fmt.Fprintf(out, "Error: %s\n", err)
		return
	}
	defer view.Close()

	from, to := int64(0), view.NumSlots()
	if len(args) > 0 {
		if from, err = strconv.ParseInt(args[0], 10, 64); err != nil || from < 0 {
			fmt.Fprintf(out, "Error: invalid index %q\n", args[0])
			return
		}
	}
	if len(args) > 1 {
		if to, err = strconv.ParseInt(args[1], 10, 64); err != nil {
			fmt.Fprintf(out, "Error: invalid index %q\n", args[1])
			return
		}
		to = min(to, view.NumSlots())
	}

	count := 0
	for i := from; i < to; i++ {
		text := layout.Strip(view.Slot(i))
		if len(text) == 0 {
			continue
		}
		var v json.RawMessage
		if err := layout.DecodeEnvelope(text, &v); err != nil {
			fmt.Fprintf(out, "%d: <%s>\n", i, err)
			continue
		}
		fmt.Fprintf(out, "%d: %s\n", i, v)
		count++
	}
	fmt.Fprintf(out, "%d entries found\n", count)
}
