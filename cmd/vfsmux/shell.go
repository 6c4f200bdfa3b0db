package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/log"
)

var demoScript = []string{
	"mounts",
	"ls -R /root",
	"cat /root/readme.txt",
	"stat /root/nested/other.txt",
	"write /root/file.txt hello",
	"cat /root/file.txt",
	"cat /root/missing.txt",
	"cat /root/",
	"exists /root/nested/logs/boot.log",
	"cat /dummy/anything",
}

// runDemo executes a fixed script against the demo mounts and prints every step.
func runDemo(ctx context.Context, center *command.Center, out io.Writer, logger *log.Logger) int {
	for _, line := range demoScript {
		fmt.Fprintf(out, "$ %s\n", line)

		code, err := center.ExecuteLine(ctx, out, line)
		if err != nil {
			fmt.Fprintf(out, "error (exit %d): %v\n", code, err)
		}
		fmt.Fprintln(out)
	}

	logger.Debug("demo finished after %d command(s)", len(demoScript))
	return 0
}

// runShell reads commands line by line until EOF, "exit" or cancellation.
func runShell(ctx context.Context, center *command.Center, in io.Reader, out io.Writer) int {
	scanner := bufio.NewScanner(in)
	code := 0

	for {
		fmt.Fprint(out, "vfsmux> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}

		var err error
		code, err = center.ExecuteLine(ctx, out, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	return code
}
