// Package cli provides plain terminal I/O for the petcore engine: a line
// loop with meta-commands and a paced reply.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nathoo/petcore/host"
	"github.com/nathoo/petcore/types"
)

// CLI handles terminal interaction with the user.
type CLI struct {
	Host      *host.Host
	In        io.Reader
	Out       io.Writer
	Delay     time.Duration // pause before each reply
	EchoInput bool          // echo each input line after the prompt (for script playback)
}

// New creates a CLI on stdin/stdout.
func New(h *host.Host, delay time.Duration) *CLI {
	return &CLI{
		Host:  h,
		In:    os.Stdin,
		Out:   os.Stdout,
		Delay: delay,
	}
}

// Run shows the session greeting, then loops: prompt → input → dispatch →
// output. It returns when input ends, /quit is entered or ctx is done.
func (c *CLI) Run(ctx context.Context, greeting types.Result) error {
	c.printLines(c.Host.Render(greeting))

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()

	for {
		c.print("> ")
		var raw string
		select {
		case <-ctx.Done():
			c.printLine("")
			return nil
		case l, ok := <-lines:
			if !ok {
				return <-errc
			}
			raw = l
		}

		input := strings.TrimSpace(raw)
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if host.IsCommand(input) {
			out, quit := c.Host.Exec(ctx, input)
			c.printLines(out)
			if quit {
				return nil
			}
			continue
		}

		// Input read while a reply is pending stays buffered in the
		// scanner goroutine until the reply is printed.
		if !c.wait(ctx) {
			c.printLine("")
			return nil
		}
		c.printLines(c.Host.Render(c.Host.Engine.ProcessMessage(raw)))
	}
}

// wait sleeps for the reply delay. Returns false if ctx ended first.
func (c *CLI) wait(ctx context.Context) bool {
	if c.Delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// printLines writes host output with a per-kind prefix.
func (c *CLI) printLines(lines []host.Line) {
	name := c.Host.Name()
	for _, l := range lines {
		switch l.Kind {
		case host.KindPet:
			c.printLine(name + ": " + l.Text)
		case host.KindAnnouncement:
			c.printLine(name + ": *** " + l.Text + " ***")
		case host.KindUnlock, host.KindSystem:
			c.printSystem(l.Text)
		default:
			c.printLine(l.Text)
		}
	}
}

// Output helpers.

func (c *CLI) printLine(s string) {
	fmt.Fprintln(c.Out, s)
}

func (c *CLI) print(s string) {
	fmt.Fprint(c.Out, s)
}

func (c *CLI) printSystem(s string) {
	fmt.Fprintf(c.Out, "[%s]\n", s)
}
