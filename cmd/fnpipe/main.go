// Command fnpipe runs declarative number pipelines.
//
//	fnpipe run -f pipelines/avg.yaml 1 2 3 4 5 6
//	echo "[1, 2, 3]" | fnpipe run -n avg --output json
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/fnkit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], cli.IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	stop()
	os.Exit(code)
}
