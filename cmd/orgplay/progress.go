package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// progress prints a single self-updating status line.
// Nothing is printed if the output is not a terminal.
type progress struct {
	out     *os.File
	enabled bool
	printed bool
}

func newProgress(out *os.File) *progress {
	return &progress{
		out:     out,
		enabled: term.IsTerminal(int(out.Fd())),
	}
}

func (p *progress) Update(status string) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.out, "\r\033[K%s", status)
	p.printed = true
}

func (p *progress) Done() {
	if p.printed {
		fmt.Fprintln(p.out)
	}
}
