// Command avm2dbg is a minimal interactive REPL for stepping through the
// script initializers a do_abc load queues up: step one script's global
// initializer at a time, inspect its globals, and see a backtrace of
// what's left to run.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/flashcore/avm2/domain"
	"github.com/flashcore/avm2/interp"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/runtime"
)

var publicNS = names.New(names.KindPublic, "")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: avm2dbg <file.abc>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "avm2dbg: %v\n", err)
		os.Exit(1)
	}

	sys := domain.NewSystemDomain()
	registry := runtime.Bootstrap(sys)
	machine := interp.NewMachine(sys, registry)
	user := domain.New(sys)

	scripts, err := user.DoABC(data, domain.LazyInitialize, machine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "avm2dbg: loading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	sess := &session{scripts: scripts, machine: machine}
	sess.run()
}

type session struct {
	scripts []*domain.Script
	machine *interp.Machine
	cursor  int // index of the next not-yet-stepped script
	current *domain.Script
}

func (s *session) run() {
	prompt := "(avm2dbg) "
	if isatty.IsTerminal(os.Stdout.Fd()) {
		prompt = "\x1b[32m(avm2dbg)\x1b[0m "
	}

	rl, err := readline.New(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "avm2dbg: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("loaded %d script(s); type 'help' for commands\n", len(s.scripts))

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "avm2dbg: %v\n", err)
			return
		}
		s.dispatch(strings.TrimSpace(line))
	}
}

func (s *session) dispatch(line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println("commands: step, continue, bt, print <name>, quit")
	case "step":
		s.step()
	case "continue":
		for s.cursor < len(s.scripts) {
			s.step()
		}
	case "bt":
		s.backtrace()
	case "print":
		if len(args) != 1 {
			fmt.Println("usage: print <name>")
			return
		}
		s.print(args[0])
	case "quit", "exit":
		os.Exit(0)
	default:
		fmt.Printf("unknown command %q; type 'help'\n", cmd)
	}
}

func (s *session) step() {
	if s.cursor >= len(s.scripts) {
		fmt.Println("no scripts left to initialize")
		return
	}
	sc := s.scripts[s.cursor]
	s.cursor++
	if err := sc.EnsureInitialized(s.machine); err != nil {
		fmt.Printf("script %d: runtime error: %v\n", s.cursor-1, err)
		return
	}
	s.current = sc
	fmt.Printf("script %d initialized (%d top-level trait(s))\n", s.cursor-1, len(sc.Traits))
}

func (s *session) backtrace() {
	fmt.Printf("%d/%d script(s) initialized\n", s.cursor, len(s.scripts))
	for i := s.cursor; i < len(s.scripts); i++ {
		fmt.Printf("  #%d pending\n", i)
	}
}

func (s *session) print(name string) {
	if s.current == nil {
		fmt.Println("no current script; run 'step' first")
		return
	}
	v, ok := s.current.Global.GetProperty(names.NewQName(publicNS, name))
	if !ok {
		fmt.Printf("%s: not found\n", name)
		return
	}
	fmt.Printf("%s = %s\n", name, v.ToString())
}
