package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	sassas "github.com/Pluto-Zy/SASS-Assembler"
	"github.com/Pluto-Zy/SASS-Assembler/langserver"
)

const (
	appName     = "sassas"
	historyFile = ".sassas_history"
	promptMain  = "==> "
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }
func faint(s string) string { return "\x1b[2m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "dump":
		os.Exit(cmdDump(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "lsp":
		os.Exit(cmdLsp(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`SASS instruction description tool

Usage:
  %s check <file>                  Parse a description file and report diagnostics.
  %s dump [-raw] <file>            Parse a description file and dump the model.
  %s repl <file>                   Load a description file and inspect it interactively.
  %s lsp [-tcp addr] [-ws addr]    Run the language server (stdio by default).
`, appName, appName, appName, appName)
}

// loadISA reads and parses a description file, printing any diagnostics to
// stderr. The model is nil if parsing failed.
func loadISA(file string) (*sassas.ISA, bool) {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return nil, false
	}

	isa, diags := sassas.Parse(file, string(src))
	if isa == nil {
		printDiagnostics(os.Stderr, string(src), diags)
		return nil, false
	}
	return isa, true
}

// printDiagnostics renders diagnostics as plain text, one block per
// diagnostic with its annotated positions and notes.
func printDiagnostics(w io.Writer, source string, diags []sassas.Diag) {
	lines := sassas.NewLineMap(source)

	position := func(r sassas.TokenRange) string {
		line, col := lines.Position(r.Begin)
		return fmt.Sprintf("%d:%d", line+1, col+1)
	}

	for _, diag := range diags {
		fmt.Fprintf(w, "%s: %s\n", diag.Level, diag.Message)
		for _, ann := range diag.Annotations {
			loc := fmt.Sprintf("  --> %s:%s", diag.Origin, position(ann.Range))
			if ann.Label != "" {
				loc += ": " + ann.Label
			}
			fmt.Fprintln(w, loc)
		}
		for _, note := range diag.Notes {
			fmt.Fprintf(w, "  %s: %s\n", note.Level, note.Message)
		}
	}
}

// -----------------------------------------------------------------------------
// check
// -----------------------------------------------------------------------------

func cmdCheck(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s check <file>\n", appName)
		return 2
	}

	if _, ok := loadISA(args[0]); !ok {
		return 1
	}
	fmt.Printf("%s: ok\n", args[0])
	return 0
}

// -----------------------------------------------------------------------------
// dump
// -----------------------------------------------------------------------------

func cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	raw := fs.Bool("raw", false, "dump the raw model structure instead of the formatted view")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s dump [-raw] <file>\n", appName)
		return 2
	}

	isa, ok := loadISA(fs.Arg(0))
	if !ok {
		return 1
	}

	if *raw {
		spew.Dump(isa)
	} else {
		isa.Dump(os.Stdout)
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

const replHelp = `Commands:
  reg <category> <name>    Look up a register value.
  table <name> <key>...    Look up a table row (integer keys, - for any).
  const <name>             Look up a constant.
  param <name>             Look up a parameter.
  str <name>               Look up a string map entry.
  mask <name>              Show a functional unit bitmask.
  dump                     Dump the whole model.
  :quit                    Exit.
`

func cmdRepl(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s repl <file>\n", appName)
		return 2
	}

	isa, ok := loadISA(args[0])
	if !ok {
		return 1
	}
	fmt.Printf("%s loaded (%s). Type help for commands, :quit to exit.\n", args[0], isa.Architecture.Name)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if line == ":quit" {
			return 0
		}
		fmt.Print(evalCommand(isa, line))
	}
}

// evalCommand runs one inspector command against the model and returns its
// output.
func evalCommand(isa *sassas.ISA, line string) string {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return replHelp

	case "dump":
		var b strings.Builder
		isa.Dump(&b)
		return blue(b.String())

	case "reg":
		if len(args) != 2 {
			return red("usage: reg <category> <name>\n")
		}
		group, ok := isa.Registers.Find(args[0])
		if !ok {
			return red(fmt.Sprintf("unknown register category %q\n", args[0]))
		}
		value, ok := group.Find(args[1])
		if !ok {
			return red(fmt.Sprintf("unknown register %q in category %q\n", args[1], args[0]))
		}
		return blue(fmt.Sprintf("%s@%s = %d\n", args[0], args[1], value))

	case "table":
		if len(args) < 2 {
			return red("usage: table <name> <key>...\n")
		}
		table, ok := isa.Tables[args[0]]
		if !ok {
			return red(fmt.Sprintf("unknown table %q\n", args[0]))
		}
		if len(args)-1 != table.KeySize() {
			return red(fmt.Sprintf("table %q expects %d keys\n", args[0], table.KeySize()))
		}
		keys := make([]uint32, 0, len(args)-1)
		for _, arg := range args[1:] {
			if arg == "-" {
				keys = append(keys, sassas.MatchAny)
				continue
			}
			key, err := strconv.ParseUint(arg, 0, 32)
			if err != nil {
				return red(fmt.Sprintf("invalid key %q\n", arg))
			}
			keys = append(keys, uint32(key))
		}
		value, found := table.Lookup(keys)
		if !found {
			return faint("no matching row\n")
		}
		return blue(fmt.Sprintf("%d\n", value))

	case "const", "param":
		if len(args) != 1 {
			return red(fmt.Sprintf("usage: %s <name>\n", cmd))
		}
		src := isa.Constants
		if cmd == "param" {
			src = isa.Parameters
		}
		value, ok := src[args[0]]
		if !ok {
			return red(fmt.Sprintf("unknown %s %q\n", cmd, args[0]))
		}
		return blue(fmt.Sprintf("%s = %d\n", args[0], value))

	case "str":
		if len(args) != 1 {
			return red("usage: str <name>\n")
		}
		value, ok := isa.StringMap[args[0]]
		if !ok {
			return red(fmt.Sprintf("unknown string map entry %q\n", args[0]))
		}
		return blue(fmt.Sprintf("%s -> %s\n", args[0], value))

	case "mask":
		if len(args) != 1 {
			return red("usage: mask <name>\n")
		}
		mask, ok := isa.FunctionalUnit.FindBitmask(args[0])
		if !ok {
			return red(fmt.Sprintf("unknown bitmask %q\n", args[0]))
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s    ", args[0])
		mask.Dump(&b)
		b.WriteByte('\n')
		return blue(b.String())

	default:
		return red("unknown command. Type help for commands, :quit to exit.\n")
	}
}

// -----------------------------------------------------------------------------
// lsp
// -----------------------------------------------------------------------------

func cmdLsp(args []string) int {
	fs := flag.NewFlagSet("lsp", flag.ExitOnError)
	tcpAddr := fs.String("tcp", "", "listen for TCP connections on this address instead of stdio")
	wsAddr := fs.String("ws", "", "listen for websocket connections on this address instead of stdio")
	_ = fs.Parse(args)

	switch {
	case *tcpAddr != "" && *wsAddr != "":
		fmt.Fprintf(os.Stderr, "%s lsp: -tcp and -ws are mutually exclusive\n", appName)
		return 2
	case *tcpAddr != "":
		if err := langserver.ListenAndServeTCP(*tcpAddr); err != nil {
			fmt.Fprintf(os.Stderr, "%s lsp: %v\n", appName, err)
			return 1
		}
	case *wsAddr != "":
		if err := langserver.ListenAndServeWebSocket(*wsAddr); err != nil {
			fmt.Fprintf(os.Stderr, "%s lsp: %v\n", appName, err)
			return 1
		}
	default:
		langserver.ListenAndServe()
	}
	return 0
}
